package llm

import "fmt"

// analysisInstruction is the fixed instruction sent with every image.
// The model must answer with a single JSON object carrying exactly the
// two string fields the service renders: description and prompt.
const analysisInstruction = `
You are an expert visual analyst and prompt engineer.

Look carefully at the attached image and produce:

1. "description": a thorough, well-structured descriptive passage of the
   image written in %s. Cover the subjects, setting, composition,
   lighting, colors, mood and any notable details. Use multiple
   paragraphs separated by line breaks where it helps readability.

2. "prompt": a professional image-generation prompt written in %s,
   suitable for tools such as Midjourney, DALL-E or Stable Diffusion.
   It should capture the style, subject, composition, lighting and
   quality modifiers needed to recreate a similar image.

Output a single valid JSON object and nothing else, with exactly these
two string fields:

{"description": "<string>", "prompt": "<string>"}

No markdown fences, no commentary outside the JSON object.
`

// AnalysisInstruction builds the fixed instruction for the configured
// output languages (full language names, e.g. "Arabic", "English").
func AnalysisInstruction(descriptionLanguage, promptLanguage string) string {
	return fmt.Sprintf(analysisInstruction, descriptionLanguage, promptLanguage)
}

// TranslateInstruction builds the instruction for re-rendering a
// description into another language.
func TranslateInstruction(text, targetLanguage string) string {
	return fmt.Sprintf("Please translate the following text to %s. Output only the translated text, nothing else.\n\n%s", targetLanguage, text)
}
