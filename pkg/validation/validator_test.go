package validation

import (
	"encoding/json"
	"errors"
	"io"
	"testing"

	"github.com/gin-gonic/gin/binding"
)

type sample struct {
	Title string   `json:"title" binding:"required"`
	Tags  []string `json:"tags" binding:"max=2"`
	Limit int      `form:"limit" binding:"omitempty,min=1"`
}

func TestToDetailsUsesJSONNames(t *testing.T) {
	Init()
	err := binding.Validator.ValidateStruct(&sample{Tags: []string{"a", "b", "c"}, Limit: -1})
	d := ToDetails(err)
	if d["title"] != "is required" {
		t.Fatalf("title = %q", d["title"])
	}
	if d["tags"] != "must contain at most 2 item(s)" {
		t.Fatalf("tags = %q", d["tags"])
	}
	if d["limit"] != "must be at least 1" {
		t.Fatalf("limit = %q", d["limit"])
	}
}

func TestToDetailsDecodeErrors(t *testing.T) {
	if d := ToDetails(io.EOF); d["payload"] != "request body is empty" {
		t.Fatalf("EOF = %v", d)
	}
	var v struct {
		N int `json:"n"`
	}
	err := json.Unmarshal([]byte(`{"n":"x"}`), &v)
	if d := ToDetails(err); d["n"] != "must be of type int" {
		t.Fatalf("type error = %v", d)
	}
	err = json.Unmarshal([]byte(`{`), &v)
	if d := ToDetails(err); d["payload"] == "" {
		t.Fatalf("syntax error = %v", d)
	}
	if d := ToDetails(errors.New("other")); d["payload"] != "invalid payload" {
		t.Fatalf("other = %v", d)
	}
	if ToDetails(nil) != nil {
		t.Fatal("nil error should give nil details")
	}
}
