package generator

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	blogPostTemplate           = "Write a %s blog post of %d words about %s. Include an engaging introduction and conclusion."
	socialMediaPostTemplate    = "Write a %s social media post of %d words about %s. The tone should be short, catchy, and engaging."
	productDescriptionTemplate = "Write a %s product description of %d words about %s. Focus on key features and benefits."
)

// BuildPrompt 生成发送给模型的指令。
func BuildPrompt(req Request) (string, error) {
	var tmpl string
	switch req.ContentType {
	case BlogPost:
		tmpl = blogPostTemplate
	case SocialMediaPost:
		tmpl = socialMediaPostTemplate
	case ProductDescription:
		tmpl = productDescriptionTemplate
	default:
		return "", fmt.Errorf("%w: %d", ErrUnknownContentType, int(req.ContentType))
	}
	return fmt.Sprintf(tmpl, req.Tone, req.TargetLength, req.Topic), nil
}

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// DownloadName 由主题生成 PDF 文件名。
func DownloadName(topic string) string {
	slug := nonAlnum.ReplaceAllString(strings.ToLower(topic), "-")
	slug = strings.Trim(slug, "-")
	if len(slug) > 80 {
		slug = strings.TrimRight(slug[:80], "-")
	}
	if slug == "" {
		slug = "content"
	}
	return slug + ".pdf"
}
