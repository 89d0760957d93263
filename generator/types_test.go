package generator

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestParseContentType(t *testing.T) {
	for _, ct := range ContentTypes() {
		got, err := ParseContentType(ct.String())
		if err != nil || got != ct {
			t.Errorf("ParseContentType(%q) = %v, %v", ct.String(), got, err)
		}
	}
	if got, err := ParseContentType("  blog post "); err != nil || got != BlogPost {
		t.Errorf("case/space-insensitive parse = %v, %v", got, err)
	}
	if _, err := ParseContentType("Newsletter"); !errors.Is(err, ErrUnknownContentType) {
		t.Errorf("unknown content type err = %v", err)
	}
}

func TestParseTone(t *testing.T) {
	want := []string{"Formal", "Casual", "Professional", "Inspirational", "Humorous"}
	tones := Tones()
	if len(tones) != len(want) {
		t.Fatalf("Tones() has %d entries, want %d", len(tones), len(want))
	}
	for i, name := range want {
		got, err := ParseTone(name)
		if err != nil || got != tones[i] {
			t.Errorf("ParseTone(%q) = %v, %v", name, got, err)
		}
	}
	if _, err := ParseTone("Sarcastic"); !errors.Is(err, ErrUnknownTone) {
		t.Errorf("unknown tone err = %v", err)
	}
}

func TestEnumsDecodeFromJSON(t *testing.T) {
	var v struct {
		ContentType ContentType `json:"content_type"`
		Tone        Tone        `json:"tone"`
	}
	if err := json.Unmarshal([]byte(`{"content_type":"Product Description","tone":"Humorous"}`), &v); err != nil {
		t.Fatal(err)
	}
	if v.ContentType != ProductDescription || v.Tone != Humorous {
		t.Errorf("decoded %v / %v", v.ContentType, v.Tone)
	}
	if err := json.Unmarshal([]byte(`{"content_type":"Poem"}`), &v); err == nil {
		t.Error("expected error for unknown content type")
	}
}

func TestRequestValidate(t *testing.T) {
	valid := Request{ContentType: BlogPost, Tone: Casual, TargetLength: 500, Topic: "x"}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid request: %v", err)
	}

	tests := []struct {
		name string
		mut  func(*Request)
		want error
	}{
		{"zero content type", func(r *Request) { r.ContentType = 0 }, ErrUnknownContentType},
		{"zero tone", func(r *Request) { r.Tone = 0 }, ErrUnknownTone},
		{"too short", func(r *Request) { r.TargetLength = MinTargetLength - 1 }, ErrTargetLength},
		{"too long", func(r *Request) { r.TargetLength = MaxTargetLength + 1 }, ErrTargetLength},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := valid
			tt.mut(&r)
			if err := r.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}

	for _, n := range []int{MinTargetLength, MaxTargetLength} {
		r := valid
		r.TargetLength = n
		if err := r.Validate(); err != nil {
			t.Errorf("length %d rejected: %v", n, err)
		}
	}
}

func TestTitle(t *testing.T) {
	if got := Title(SocialMediaPost, "coffee"); got != "Social Media Post on coffee" {
		t.Errorf("Title = %q", got)
	}
}
