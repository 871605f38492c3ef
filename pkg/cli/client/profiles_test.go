package client

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"reels-dash-go/pkg/models"
)

func TestValidateProfilesPartition(t *testing.T) {
	bodies := map[string]string{
		"inline":  `{"success":true,"validation":{"https://facebook.com/a":{"valid":true},"bad":{"valid":false,"error":"Invalid Facebook URL"},"https://facebook.com/c":{"valid":true}}}`,
		"nested":  `{"success":true,"validation":{"validation":{"https://facebook.com/a":{"valid":true},"bad":{"valid":false,"error":"Invalid Facebook URL"},"https://facebook.com/c":{"valid":true}}}}`,
		"wrapped": `{"success":true,"data":{"validation":{"https://facebook.com/a":{"valid":true},"bad":{"valid":false,"error":"Invalid Facebook URL"},"https://facebook.com/c":{"valid":true}}}}`,
	}

	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			var sent string
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				b, _ := io.ReadAll(r.Body)
				sent = string(b)
				io.WriteString(w, body)
			}))
			defer srv.Close()

			urls := []string{"https://facebook.com/c", "bad", " https://facebook.com/a", "https://facebook.com/c"}
			res, err := NewClient(srv.URL).ValidateProfiles(context.Background(), urls)
			if err != nil {
				t.Fatal(err)
			}

			if want := `{"profileUrls":["https://facebook.com/c","bad","https://facebook.com/a","https://facebook.com/c"]}`; sent != want {
				t.Errorf("sent %s, want %s", sent, want)
			}
			if want := []string{"https://facebook.com/c", "https://facebook.com/a"}; !reflect.DeepEqual(res.ValidURLs, want) {
				t.Errorf("valid = %v, want %v", res.ValidURLs, want)
			}
			if want := []string{"bad"}; !reflect.DeepEqual(res.InvalidURLs, want) {
				t.Errorf("invalid = %v, want %v", res.InvalidURLs, want)
			}
			if res.Validation["bad"].Error != "Invalid Facebook URL" {
				t.Errorf("entry = %+v", res.Validation["bad"])
			}
		})
	}
}

func TestPartitionValidationExtraKeysSorted(t *testing.T) {
	entries := map[string]models.ValidationEntry{
		"a":       {Valid: true},
		"zz":      {Valid: false},
		"extra-b": {Valid: true},
		"extra-a": {Valid: true},
	}
	res := partitionValidation([]string{"zz", "a", "missing"}, entries)

	if want := []string{"a", "extra-a", "extra-b"}; !reflect.DeepEqual(res.ValidURLs, want) {
		t.Errorf("valid = %v, want %v", res.ValidURLs, want)
	}
	if want := []string{"zz"}; !reflect.DeepEqual(res.InvalidURLs, want) {
		t.Errorf("invalid = %v, want %v", res.InvalidURLs, want)
	}
	if got := res.ValidFraction(); got != 0.75 {
		t.Errorf("ValidFraction() = %v, want 0.75", got)
	}
}
