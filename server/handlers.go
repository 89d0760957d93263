package server

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"strings"
	"time"

	"content_generator/exporter"
	"content_generator/generator"
	"content_generator/logging"
)

type generateReq struct {
	ContentType generator.ContentType `json:"content_type"`
	Tone        generator.Tone        `json:"tone"`
	Length      int                   `json:"length"`
	Topic       string                `json:"topic"`
}

func (g generateReq) toRequest() generator.Request {
	length := g.Length
	if length == 0 {
		length = generator.DefaultTargetLength
	}
	return generator.Request{
		ContentType:  g.ContentType,
		Tone:         g.Tone,
		TargetLength: length,
		Topic:        g.Topic,
	}
}

type generateResp struct {
	Text      string `json:"text,omitempty"`
	Message   string `json:"message,omitempty"`
	Filename  string `json:"filename,omitempty"`
	PDFBase64 string `json:"pdf_base64,omitempty"`
}

type lengthBounds struct {
	Min     int `json:"min"`
	Max     int `json:"max"`
	Default int `json:"default"`
}

type optionsResp struct {
	ContentTypes []string     `json:"content_types"`
	Tones        []string     `json:"tones"`
	Length       lengthBounds `json:"length"`
}

func contentTypeNames() []string {
	var out []string
	for _, c := range generator.ContentTypes() {
		out = append(out, c.String())
	}
	return out
}

func toneNames() []string {
	var out []string
	for _, t := range generator.Tones() {
		out = append(out, t.String())
	}
	return out
}

// --- JSON API ---

// GET /api/v1/options
func (s *Server) handleOptions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, optionsResp{
		ContentTypes: contentTypeNames(),
		Tones:        toneNames(),
		Length: lengthBounds{
			Min:     generator.MinTargetLength,
			Max:     generator.MaxTargetLength,
			Default: generator.DefaultTargetLength,
		},
	})
}

func decodeGenerateReq(r *http.Request) (generator.Request, error) {
	var req generateReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return generator.Request{}, fmt.Errorf("bad request body: %w", err)
	}
	return req.toRequest(), nil
}

// POST /api/v1/generate
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	req, err := decodeGenerateReq(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	res, err := s.submitter.Submit(r.Context(), req)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if res.PDF == nil {
		writeJSON(w, http.StatusOK, generateResp{Message: res.Text})
		return
	}
	writeJSON(w, http.StatusOK, generateResp{
		Text:      res.Text,
		Filename:  res.Filename,
		PDFBase64: base64.StdEncoding.EncodeToString(res.PDF),
	})
}

// POST /api/v1/generate/pdf
func (s *Server) handleGeneratePDF(w http.ResponseWriter, r *http.Request) {
	req, err := decodeGenerateReq(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	res, err := s.submitter.Submit(r.Context(), req)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if res.PDF == nil {
		writeJSON(w, http.StatusBadRequest, generateResp{Message: res.Text})
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", contentDisposition(res.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(res.PDF)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.PDF)
}

// GET /api/v1/health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"ok": true,
		"ts": time.Now().UTC(),
	})
}

// --- HTML form ---

type pageData struct {
	ContentTypes []string
	Tones        []string
	MinLength    int
	MaxLength    int

	ContentType string
	Tone        string
	Length      int
	Topic       string

	Text       string
	Preview    template.HTML
	Filename   string
	PDFDataURI template.URL
	Error      string
}

func newPageData() pageData {
	return pageData{
		ContentTypes: contentTypeNames(),
		Tones:        toneNames(),
		MinLength:    generator.MinTargetLength,
		MaxLength:    generator.MaxTargetLength,
		ContentType:  generator.BlogPost.String(),
		Tone:         generator.Formal.String(),
		Length:       generator.DefaultTargetLength,
	}
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, code int, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(code)
	if err := s.page.Execute(w, data); err != nil {
		logging.FromContext(r.Context(), s.logger).Error("render page", "err", err)
	}
}

// GET /
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, newPageData())
}

// POST /generate
func (s *Server) handleGenerateForm(w http.ResponseWriter, r *http.Request) {
	data := newPageData()
	if err := r.ParseForm(); err != nil {
		data.Error = err.Error()
		s.render(w, r, http.StatusBadRequest, data)
		return
	}
	data.ContentType = r.PostFormValue("content_type")
	data.Tone = r.PostFormValue("tone")
	data.Topic = r.PostFormValue("topic")

	req, err := parseForm(r)
	if err != nil {
		data.Error = err.Error()
		s.render(w, r, http.StatusBadRequest, data)
		return
	}
	data.Length = req.TargetLength

	res, err := s.submitter.Submit(r.Context(), req)
	if err != nil {
		code := statusFor(err)
		if code >= http.StatusInternalServerError {
			logging.FromContext(r.Context(), s.logger).Error("generate from form failed", "err", err)
		}
		data.Error = err.Error()
		s.render(w, r, code, data)
		return
	}

	data.Text = res.Text
	if res.PDF != nil {
		if html, err := exporter.HTMLPreview(res.Text); err == nil {
			data.Preview = template.HTML(html)
		}
		data.Filename = res.Filename
		data.PDFDataURI = template.URL("data:application/pdf;base64," + base64.StdEncoding.EncodeToString(res.PDF))
	}
	s.render(w, r, http.StatusOK, data)
}

func parseForm(r *http.Request) (generator.Request, error) {
	ct, err := generator.ParseContentType(r.PostFormValue("content_type"))
	if err != nil {
		return generator.Request{}, err
	}
	tone, err := generator.ParseTone(r.PostFormValue("tone"))
	if err != nil {
		return generator.Request{}, err
	}
	length := generator.DefaultTargetLength
	if raw := strings.TrimSpace(r.PostFormValue("length")); raw != "" {
		length, err = strconv.Atoi(raw)
		if err != nil {
			return generator.Request{}, fmt.Errorf("%w: %q", generator.ErrTargetLength, raw)
		}
	}
	return generator.Request{
		ContentType:  ct,
		Tone:         tone,
		TargetLength: length,
		Topic:        r.PostFormValue("topic"),
	}, nil
}
