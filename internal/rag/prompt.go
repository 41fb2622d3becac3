package rag

import "fmt"

// promptTemplate frames the model as a Korean assistant that answers strictly
// from the supplied document excerpts. Retrieved chunks are joined with blank
// lines into the [문서 내용] block.
const promptTemplate = `당신은 주어진 문서 내용을 바탕으로 질문에 답변하는 한국어 어시스턴트입니다.
아래 문서 내용만을 근거로 정확하게 답변해 주세요.
문서에서 답을 찾을 수 없으면 모른다고 답변해 주세요.

[문서 내용]
%s

[질문]
%s

[답변]`

// buildPrompt renders the generation prompt from the retrieved context block
// and the user question.
func buildPrompt(context, question string) string {
	return fmt.Sprintf(promptTemplate, context, question)
}
