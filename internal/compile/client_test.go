package compile

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileSuccess(t *testing.T) {
	var received compileRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/compile", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write([]byte("%PDF-1.5 fake"))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	pdf, err := client.Compile(context.Background(), "\\documentclass{report}", []AuxFile{{Name: "refs.bib", Content: []byte("@book{}")}})
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.5 fake", string(pdf))
	assert.Equal(t, "\\documentclass{report}", received.MainSource)
	require.Len(t, received.AuxFiles, 1)
	assert.Equal(t, "refs.bib", received.AuxFiles[0].Name)
}

func TestCompileFailureCarriesLog(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_ = json.NewEncoder(w).Encode(compileFailure{Error: "compilation failed", Log: "! Undefined control sequence."})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.Compile(context.Background(), "\\badcmd", nil)
	require.Error(t, err)

	var compileErr *Error
	require.ErrorAs(t, err, &compileErr)
	assert.Equal(t, "! Undefined control sequence.", compileErr.Log)
}

func TestCompileUnexpectedStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.Compile(context.Background(), "x", nil)
	require.Error(t, err)

	var compileErr *Error
	assert.False(t, errors.As(err, &compileErr))
}
