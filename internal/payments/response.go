package payments

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Artifact is one typed output of a gateway call. Only text artifacts carry
// content the services read.
type Artifact struct {
	Type    string `json:"type"`
	Kind    string `json:"kind,omitempty"`
	Name    string `json:"name,omitempty"`
	Content string `json:"content"`
}

func (a Artifact) isText() bool {
	return a.Type == "text" || (a.Type == "" && a.Kind == "text")
}

// Response is either a bare string or an envelope of artifacts. Status is set
// only by gateways that report a structured outcome.
type Response struct {
	Status    string     `json:"status,omitempty"`
	Artifacts []Artifact `json:"artifacts,omitempty"`
	Plain     string     `json:"-"`
}

func DecodeResponse(raw []byte) (*Response, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return &Response{}, nil
	}
	if trimmed[0] == '"' {
		var plain string
		if err := json.Unmarshal(trimmed, &plain); err != nil {
			return nil, fmt.Errorf("decode gateway string response failed: %w", err)
		}
		return &Response{Plain: plain}, nil
	}

	var resp Response
	if err := json.Unmarshal(trimmed, &resp); err != nil {
		return nil, fmt.Errorf("decode gateway response failed: %w", err)
	}
	return &resp, nil
}

// Text joins the trimmed content of every text artifact, one per line.
func (r *Response) Text() string {
	if r == nil {
		return ""
	}
	if r.Plain != "" {
		return strings.TrimSpace(r.Plain)
	}
	parts := make([]string, 0, len(r.Artifacts))
	for _, artifact := range r.Artifacts {
		if !artifact.isText() {
			continue
		}
		if content := strings.TrimSpace(artifact.Content); content != "" {
			parts = append(parts, content)
		}
	}
	return strings.Join(parts, "\n")
}
