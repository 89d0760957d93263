package generator

import (
	"errors"
	"fmt"
	"strings"
)

const (
	MinTargetLength     = 100
	MaxTargetLength     = 1500
	DefaultTargetLength = 500
)

var (
	ErrUnknownContentType = errors.New("unknown content type")
	ErrUnknownTone        = errors.New("unknown tone")
	ErrTargetLength       = fmt.Errorf("target length must be between %d and %d", MinTargetLength, MaxTargetLength)
)

// ContentType is the category of text to generate.
type ContentType int

const (
	BlogPost ContentType = iota + 1
	SocialMediaPost
	ProductDescription
)

var contentTypeNames = map[ContentType]string{
	BlogPost:           "Blog Post",
	SocialMediaPost:    "Social Media Post",
	ProductDescription: "Product Description",
}

// ContentTypes lists the content types in the order the UI offers them.
func ContentTypes() []ContentType {
	return []ContentType{BlogPost, SocialMediaPost, ProductDescription}
}

func (c ContentType) String() string {
	if name, ok := contentTypeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("ContentType(%d)", int(c))
}

func (c ContentType) Valid() bool {
	_, ok := contentTypeNames[c]
	return ok
}

// ParseContentType matches the display name, ignoring case and surrounding spaces.
func ParseContentType(s string) (ContentType, error) {
	s = strings.TrimSpace(s)
	for _, c := range ContentTypes() {
		if strings.EqualFold(s, c.String()) {
			return c, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownContentType, s)
}

func (c ContentType) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownContentType, int(c))
	}
	return []byte(c.String()), nil
}

func (c *ContentType) UnmarshalText(b []byte) error {
	v, err := ParseContentType(string(b))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// Tone is the stylistic register requested in the prompt.
type Tone int

const (
	Formal Tone = iota + 1
	Casual
	Professional
	Inspirational
	Humorous
)

var toneNames = map[Tone]string{
	Formal:        "Formal",
	Casual:        "Casual",
	Professional:  "Professional",
	Inspirational: "Inspirational",
	Humorous:      "Humorous",
}

func Tones() []Tone {
	return []Tone{Formal, Casual, Professional, Inspirational, Humorous}
}

func (t Tone) String() string {
	if name, ok := toneNames[t]; ok {
		return name
	}
	return fmt.Sprintf("Tone(%d)", int(t))
}

func (t Tone) Valid() bool {
	_, ok := toneNames[t]
	return ok
}

func ParseTone(s string) (Tone, error) {
	s = strings.TrimSpace(s)
	for _, t := range Tones() {
		if strings.EqualFold(s, t.String()) {
			return t, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownTone, s)
}

func (t Tone) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownTone, int(t))
	}
	return []byte(t.String()), nil
}

func (t *Tone) UnmarshalText(b []byte) error {
	v, err := ParseTone(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// Request describes one generation asked for by a front-end.
type Request struct {
	ContentType  ContentType
	Tone         Tone
	TargetLength int
	Topic        string
}

// Validate checks everything except the topic, which Submit handles separately.
func (r Request) Validate() error {
	if !r.ContentType.Valid() {
		return fmt.Errorf("%w: %d", ErrUnknownContentType, int(r.ContentType))
	}
	if !r.Tone.Valid() {
		return fmt.Errorf("%w: %d", ErrUnknownTone, int(r.Tone))
	}
	if r.TargetLength < MinTargetLength || r.TargetLength > MaxTargetLength {
		return fmt.Errorf("%w, got %d", ErrTargetLength, r.TargetLength)
	}
	return nil
}

// Document is the generated text paired with its title.
type Document struct {
	Title string
	Body  string
}

// Title returns "{content type} on {topic}".
func Title(ct ContentType, topic string) string {
	return fmt.Sprintf("%s on %s", ct, topic)
}

// Result is what a front-end shows: the text and the PDF offered for download.
// PDF is nil when no file was produced.
type Result struct {
	Text     string `json:"text"`
	PDF      []byte `json:"-"`
	Filename string `json:"filename,omitempty"`
}
