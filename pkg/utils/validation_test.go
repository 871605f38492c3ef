package utils

import (
	"reflect"
	"testing"
)

func TestValidateURL(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"  https://facebook.com/a  ", "https://facebook.com/a", false},
		{"", "", true},
		{"   ", "", true},
		{"ftp://x.com", "", true},
		{"https://", "", true},
		{"not a url", "", true},
	}
	for _, tt := range tests {
		got, err := ValidateURL(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateURL(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ValidateURL(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseURLList(t *testing.T) {
	in := "https://facebook.com/a\r\n\n  https://facebook.com/b , https://facebook.com/a\n"
	want := []string{"https://facebook.com/a", "https://facebook.com/b", "https://facebook.com/a"}
	if got := ParseURLList(in); !reflect.DeepEqual(got, want) {
		t.Errorf("ParseURLList = %v, want %v", got, want)
	}
	if got := ParseURLList(" \n , "); len(got) != 0 {
		t.Errorf("ParseURLList(blank) = %v, want empty", got)
	}
}

func TestValidateProfileURL(t *testing.T) {
	valid := []string{
		"https://facebook.com/somepage",
		"https://www.facebook.com/some.page/",
		"https://m.facebook.com/profile.php?id=123",
		"https://fb.com/page",
	}
	for _, u := range valid {
		if err := ValidateProfileURL(u); err != nil {
			t.Errorf("ValidateProfileURL(%q) = %v, want nil", u, err)
		}
	}

	invalid := []string{
		"https://instagram.com/page",
		"https://facebook.com/",
		"facebook.com/page",
		"",
	}
	for _, u := range invalid {
		if err := ValidateProfileURL(u); err == nil {
			t.Errorf("ValidateProfileURL(%q) = nil, want error", u)
		}
	}
}
