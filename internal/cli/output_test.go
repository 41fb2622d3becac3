package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/hyperjump/kotae/internal/models"
)

func TestWriteAnswer_Text(t *testing.T) {
	var buf bytes.Buffer
	ans := &models.Answer{
		Answer:  "서울입니다.",
		Sources: []string{"대한민국의 수도는 서울이다...", "서울은 한강을 끼고 있다..."},
	}
	if err := WriteAnswer(&buf, ans, OutputText); err != nil {
		t.Fatalf("WriteAnswer: %v", err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "서울입니다.\n") {
		t.Errorf("output should start with the answer:\n%s", out)
	}
	if !strings.Contains(out, "1. 대한민국의") || !strings.Contains(out, "2. 서울은") {
		t.Errorf("output should number sources:\n%s", out)
	}
}

func TestWriteAnswer_TextNoSources(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteAnswer(&buf, &models.Answer{Answer: "모르겠습니다."}, ""); err != nil {
		t.Fatalf("WriteAnswer: %v", err)
	}
	if strings.Contains(buf.String(), "참고 문서") {
		t.Errorf("no sources should mean no source section:\n%s", buf.String())
	}
}

func TestWriteAnswer_JSON(t *testing.T) {
	var buf bytes.Buffer
	ans := &models.Answer{Answer: "답", Sources: []string{"근거"}}
	if err := WriteAnswer(&buf, ans, OutputJSON); err != nil {
		t.Fatalf("WriteAnswer: %v", err)
	}
	var decoded models.Answer
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.Answer != "답" || len(decoded.Sources) != 1 {
		t.Errorf("roundtrip mismatch: %+v", decoded)
	}
}

func TestWriteAnswer_UnknownFormat(t *testing.T) {
	if err := WriteAnswer(&bytes.Buffer{}, &models.Answer{}, "yaml"); err == nil {
		t.Error("expected error for unknown format")
	}
}
