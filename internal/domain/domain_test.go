package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_RequiredFields(t *testing.T) {
	tests := []struct {
		name string
		req  GenerateRequest
		kind ErrorKind
	}{
		{"missing api key", GenerateRequest{Task: "generate_article"}, KindInvalidInput},
		{"blank api key", GenerateRequest{Task: "generate_article", APIKey: "   "}, KindInvalidInput},
		{"missing task", GenerateRequest{APIKey: "k"}, KindInvalidInput},
		{"misspelled task", GenerateRequest{APIKey: "k", Task: "generate_artcle"}, KindUnknownTask},
		{"wrong case task", GenerateRequest{APIKey: "k", Task: "Rewrite_Content"}, KindUnknownTask},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Normalize(tt.req)
			require.Error(t, err)
			de := AsError(err)
			assert.Equal(t, tt.kind, de.Kind)
			assert.Equal(t, http.StatusBadRequest, de.Status)
		})
	}
}

func TestNormalize_WhitelistFallback(t *testing.T) {
	tests := []struct {
		model, language string
		wantModel       Model
		wantLanguage    Language
	}{
		{"", "", DefaultModel, LanguageAuto},
		{"gpt-4o", "Klingon", DefaultModel, LanguageAuto},
		{"gemini-2.5-pro", "日本語", "gemini-2.5-pro", "日本語"},
		{"gemini-2.5-flash-lite", "English", "gemini-2.5-flash-lite", "English"},
		{"GEMINI-2.5-PRO", "english", DefaultModel, LanguageAuto},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%q/%q", tt.model, tt.language), func(t *testing.T) {
			got, err := Normalize(GenerateRequest{
				Task:     "rewrite_content",
				APIKey:   "k",
				Model:    tt.model,
				Language: tt.language,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.wantModel, got.Model)
			assert.Equal(t, tt.wantLanguage, got.Language)
			assert.Equal(t, TaskRewriteContent, got.Task)
		})
	}
}

func TestResponseFieldsCoverEveryTask(t *testing.T) {
	want := map[TaskKind]string{
		TaskRewriteContent:  "rewrittenText",
		TaskGenerateArticle: "articleText",
		TaskGenerateFBPost:  "fbPostText",
	}
	for _, kind := range TaskKinds() {
		field, ok := kind.ResponseField()
		require.True(t, ok, kind)
		assert.Equal(t, want[kind], field)
	}

	_, ok := TaskKind("summarize").ResponseField()
	assert.False(t, ok)
}

func TestNewResponse_SingleField(t *testing.T) {
	resp, err := NewResponse(TaskGenerateFBPost, "hello")
	require.NoError(t, err)

	data, err := json.Marshal(resp)
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal(data, &body))
	assert.Equal(t, map[string]any{"fbPostText": "hello"}, body)

	_, err = NewResponse(TaskKind("nope"), "x")
	assert.Equal(t, KindInternal, AsError(err).Kind)
}

func TestFlag_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		raw  string
		want Flag
	}{
		{`true`, true},
		{`false`, false},
		{`"true"`, true},
		{`"1"`, true},
		{`"yes"`, false},
		{`1`, true},
		{`0`, false},
		{`null`, false},
		{`{}`, false},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			var req GenerateRequest
			require.NoError(t, json.Unmarshal([]byte(`{"useWebSearch":`+tt.raw+`}`), &req))
			assert.Equal(t, tt.want, req.UseWebSearch)
		})
	}
}

func TestDecodeGenerateRequest_Malformed(t *testing.T) {
	_, err := DecodeGenerateRequest([]byte(`{"task":`))
	require.Error(t, err)
	assert.Equal(t, KindInvalidInput, AsError(err).Kind)
}

func TestErrorStatus(t *testing.T) {
	assert.Equal(t, http.StatusGatewayTimeout, NewError(KindTimeout, "t").Status)
	assert.Equal(t, http.StatusTooManyRequests, NewUpstreamRejected(http.StatusTooManyRequests, "quota").Status)
	assert.Equal(t, http.StatusBadGateway, NewUpstreamRejected(200, "odd").Status)

	cause := errors.New("boom")
	wrapped := fmt.Errorf("pipeline: %w", NewError(KindEmptyResponse, "empty").Wrap(cause))
	de := AsError(wrapped)
	assert.Equal(t, KindEmptyResponse, de.Kind)
	assert.ErrorIs(t, wrapped, cause)
	assert.True(t, de.IsServerSide())

	assert.Equal(t, KindInternal, AsError(cause).Kind)
	assert.False(t, NewError(KindContentBlocked, "blocked").IsServerSide())
}
