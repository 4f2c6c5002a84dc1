package llm

import "testing"

func TestExtractJSONObject_PlainObject(t *testing.T) {
	var out map[string]string
	if err := ExtractJSONObject(`{"subject": "Leave Request"}`, &out); err != nil {
		t.Fatalf("extract: %v", err)
	}
	if out["subject"] != "Leave Request" {
		t.Fatalf("unexpected subject: %q", out["subject"])
	}
}

func TestExtractJSONObject_FencedWithProse(t *testing.T) {
	reply := "Here is the email you asked for:\n```json\n{\"to\": \"hr@example.com\", \"subject\": \"Sick Leave\"}\n```\nLet me know if you need edits."
	var out map[string]string
	if err := ExtractJSONObject(reply, &out); err != nil {
		t.Fatalf("extract: %v", err)
	}
	if out["to"] != "hr@example.com" || out["subject"] != "Sick Leave" {
		t.Fatalf("unexpected fields: %+v", out)
	}
}

func TestExtractJSONObject_MultilineValues(t *testing.T) {
	reply := "```json\n{\"closing\": \"Yours sincerely,\\njohn\"}\n```"
	var out map[string]string
	if err := ExtractJSONObject(reply, &out); err != nil {
		t.Fatalf("extract: %v", err)
	}
	if out["closing"] != "Yours sincerely,\njohn" {
		t.Fatalf("unexpected closing: %q", out["closing"])
	}
}

func TestExtractJSONObject_NoObject(t *testing.T) {
	var out map[string]string
	if err := ExtractJSONObject("I could not generate that.", &out); err == nil {
		t.Fatalf("expected error for reply without JSON object")
	}
}
