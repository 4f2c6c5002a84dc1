package login

import "docsmith/frontend/shared/html"

func renderLoginScreen(errorMessage, status string) string {
	body := `<div class="auth-box"><h1>docsmith</h1>` +
		html.RenderFlash(status, errorMessage) +
		`<form method="POST" action="/login" class="auth-form">
<h2>Sign in</h2>
<label>Email <input type="email" name="email" required></label>
<label>Password <input type="password" name="password" required></label>
<button type="submit">Sign in</button>
</form>
<form method="POST" action="/signup" class="auth-form">
<h2>Create account</h2>
<label>Email <input type="email" name="email" required></label>
<label>Password <input type="password" name="password" required></label>
<button type="submit">Sign up</button>
</form></div>` + html.CSRFFormScript()
	return html.RenderLayout("docsmith | Sign in", body)
}
