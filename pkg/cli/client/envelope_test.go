package client

import (
	"strings"
	"testing"
)

func TestNormalizeEnvelope(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		key       string
		wantShape Shape
		wantData  string
	}{
		{"inline", `{"success":true,"jobs":[],"pagination":{}}`, "jobs", ShapeInline, `{"success":true,"jobs":[],"pagination":{}}`},
		{"wrapped", `{"success":true,"data":{"jobs":[]}}`, "jobs", ShapeWrapped, `{"jobs":[]}`},
		{"inline needs success", `{"success":false,"jobs":[],"data":{"x":1}}`, "jobs", ShapeWrapped, `{"x":1}`},
		{"inline needs key", `{"success":true,"data":{"jobs":[1]}}`, "jobs", ShapeWrapped, `{"jobs":[1]}`},
		{"null key is absent", `{"success":true,"jobs":null,"data":{"jobs":[]}}`, "jobs", ShapeWrapped, `{"jobs":[]}`},
		{"raw object", `{"id":"j1","name":"x"}`, "id", ShapeRaw, `{"id":"j1","name":"x"}`},
		{"null data is raw", `{"message":"ok","data":null}`, "message", ShapeRaw, `{"message":"ok","data":null}`},
		{"no key disables inline", `{"success":true,"id":"a","data":{"id":"b"}}`, "", ShapeWrapped, `{"id":"b"}`},
		{"array", `[1,2]`, "jobs", ShapeRaw, `[1,2]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shape, data, err := normalizeEnvelope([]byte(tt.body), tt.key)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if shape != tt.wantShape {
				t.Errorf("shape = %s, want %s", shape, tt.wantShape)
			}
			if got := strings.TrimSpace(string(data)); got != tt.wantData {
				t.Errorf("data = %s, want %s", got, tt.wantData)
			}
		})
	}
}

func TestNormalizeEnvelopeInvalid(t *testing.T) {
	for _, body := range []string{"", "   ", "<html>oops</html>", `{"success":`} {
		if _, _, err := normalizeEnvelope([]byte(body), "jobs"); err == nil {
			t.Errorf("normalizeEnvelope(%q) expected error", body)
		}
	}
}
