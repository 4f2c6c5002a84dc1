package generator

import (
	"bytes"
	"testing"
)

func TestRenderEmailPDF(t *testing.T) {
	form := EmailForm{
		From:     "amy@example.com",
		To:       "boss@example.com",
		Subject:  "Leave request",
		Greeting: "Dear Sir,",
		Summary:  "I would like to request two days of leave next week.",
		Closing:  "Yours sincerely,\nAmy",
	}

	pdfBytes, err := renderEmailPDF(form, "DABCDEF12")
	if err != nil {
		t.Fatalf("renderEmailPDF: %v", err)
	}
	if len(pdfBytes) == 0 {
		t.Fatal("expected PDF bytes")
	}
	if !bytes.HasPrefix(pdfBytes, []byte("%PDF")) {
		t.Fatalf("output does not start with a PDF header: %q", pdfBytes[:8])
	}
}

func TestRenderApplicationPDF(t *testing.T) {
	form := ApplicationForm{
		Name:            "Amy Pond",
		ClassOrPosition: "Student",
		Organization:    "City College",
		To:              "The Principal",
		ToOrganization:  "City College",
		Date:            "29/08/2026",
		Subject:         "Application for leave",
		Respected:       "Respected Sir,",
		Body:            "I kindly request two days of leave on medical grounds.",
		Closing:         "Yours faithfully,\nAmy Pond",
	}

	pdfBytes, err := renderApplicationPDF(form, "D12345678")
	if err != nil {
		t.Fatalf("renderApplicationPDF: %v", err)
	}
	if !bytes.HasPrefix(pdfBytes, []byte("%PDF")) {
		t.Fatal("output does not start with a PDF header")
	}
}

func TestRenderPDFWithoutDocRef(t *testing.T) {
	form := EmailForm{From: "a@b.c", To: "d@e.f", Subject: "s", Greeting: "g", Summary: "m", Closing: "c"}
	if _, err := renderEmailPDF(form, ""); err != nil {
		t.Fatalf("renderEmailPDF without ref: %v", err)
	}
}
