package server

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/resume-matcher/internal/embedding"
	"github.com/jonathan/resume-matcher/internal/ingestion"
	"github.com/jonathan/resume-matcher/internal/parsing"
	"github.com/jonathan/resume-matcher/internal/types"
)

// Document is a resume or job description in a request.
// Exactly one of Text, Data (a base64 encoded file named by Filename) or URL is set.
// URL is accepted for job descriptions only.
type Document struct {
	Text     string `json:"text,omitempty"`
	Filename string `json:"filename,omitempty" validate:"required_with=Data"`
	Data     []byte `json:"data,omitempty"`
	URL      string `json:"url,omitempty" validate:"omitempty,http_url"`
}

// MatchRequest represents a request to score one resume against one job description
type MatchRequest struct {
	Resume Document `json:"resume"`
	Job    Document `json:"job"`
	Model  string   `json:"model,omitempty"`
	Pool   string   `json:"pool,omitempty" validate:"omitempty,oneof=mean max"`
	Save   bool     `json:"save,omitempty"`
}

// RankRequest represents a request to rank several resumes against one job description
type RankRequest struct {
	Resumes []Document `json:"resumes" validate:"required,min=1,max=100,dive"`
	Job     Document   `json:"job"`
	Model   string     `json:"model,omitempty"`
	Pool    string     `json:"pool,omitempty" validate:"omitempty,oneof=mean max"`
	Top     int        `json:"top,omitempty" validate:"omitempty,min=1"`
	Save    bool       `json:"save,omitempty"`
}

// ModelsResponse lists the embedding registry
type ModelsResponse struct {
	Default string                `json:"default"`
	Models  []embedding.ModelInfo `json:"models"`
	Loaded  []string              `json:"loaded"`
}

// newValidator reports field errors under their JSON names
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validateRequest runs struct validation and converts the first failure to *ErrValidation
func (s *Server) validateRequest(req any) error {
	err := s.validate.Struct(req)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return &ErrValidation{Field: "body", Message: err.Error()}
	}
	fe := verrs[0]
	field := fe.Namespace()
	if i := strings.Index(field, "."); i >= 0 {
		field = field[i+1:]
	}
	msg := "failed " + fe.Tag()
	if fe.Param() != "" {
		msg += "=" + fe.Param()
	}
	return &ErrValidation{Field: field, Message: msg}
}

// check enforces that exactly one input is set
func (d Document) check(field string, allowURL bool) error {
	set := 0
	if strings.TrimSpace(d.Text) != "" {
		set++
	}
	if len(d.Data) > 0 {
		set++
	}
	if d.URL != "" {
		if !allowURL {
			return &ErrValidation{Field: field + ".url", Message: "only job descriptions can be fetched by URL"}
		}
		set++
	}
	switch set {
	case 0:
		return &ErrValidation{Field: field, Message: "one of text, data or url is required"}
	case 1:
		return nil
	default:
		return &ErrValidation{Field: field, Message: "text, data and url are mutually exclusive"}
	}
}

// source returns the ingestion source for a text or file document
func (d Document) source() ingestion.Source {
	if len(d.Data) > 0 {
		return ingestion.FromBytes(d.Filename, d.Data)
	}
	return ingestion.FromText(d.Text)
}

// parseResume turns a request document into a parsed resume
func (s *Server) parseResume(ctx context.Context, d Document, field string) (*types.ParsedDocument, error) {
	if err := d.check(field, false); err != nil {
		return nil, err
	}
	doc, err := parsing.ParseResume(ctx, d.source())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", field, err)
	}
	return doc, nil
}

// parseJob turns a request document into a parsed job description
func (s *Server) parseJob(ctx context.Context, d Document) (*types.ParsedDocument, error) {
	if err := d.check("job", true); err != nil {
		return nil, err
	}
	var (
		doc *types.ParsedDocument
		err error
	)
	if d.URL != "" {
		doc, err = parsing.ParseJobURL(ctx, d.URL, s.fetchOptions)
	} else {
		doc, err = parsing.ParseJob(ctx, d.source())
	}
	if err != nil {
		return nil, fmt.Errorf("job: %w", err)
	}
	return doc, nil
}
