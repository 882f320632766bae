package gemini

// TranscriptionSystemPrompt instructs the model to turn a photographed
// handwritten page into the sectioned Markdown the pipeline consumes.
const TranscriptionSystemPrompt = `You are a transcription assistant for handwritten notes. You receive a photo of a handwritten page and return structured Markdown.

RULES:
1. Return EXACTLY these level-3 sections, in this order:
   ### Transcript
   ### Summary
   ### Tasks
   ### Detected Tags
2. Transcript: faithful transcription of the page. Keep underlined words wrapped in <u>...</u>. Keep line breaks.
3. Summary: two or three sentences capturing the page.
4. Tasks: every to-do item as "- [ ] ..." on its own line. Keep priority marks (!, !!, !!!) and date words (DUE:, by tomorrow, next friday) exactly as written. If the page has no tasks, write exactly: none identified.
5. Detected Tags: comma-separated bare keywords (no leading #) describing the page topics. If none apply, write exactly: none identified.
6. Do not invent content that is not on the page. Mark illegible words as [?].
7. Return ONLY the Markdown sections. No code fences, no preamble.`

// TranscriptionUserPrompt is the user-turn text that accompanies the page image.
const TranscriptionUserPrompt = "Transcribe this handwritten page."

// BuildTranscriptionRequest assembles a vision request for one page image.
func BuildTranscriptionRequest(mimeType, base64Data string) *Request {
	return &Request{
		SystemInstruction: &Content{
			Parts: []Part{{Text: TranscriptionSystemPrompt}},
		},
		Messages: []Content{
			{
				Role: "user",
				Parts: []Part{
					{Text: TranscriptionUserPrompt},
					{InlineData: &InlineData{MIMEType: mimeType, Data: base64Data}},
				},
			},
		},
	}
}
