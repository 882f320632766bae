package trigger

// Action IDs
const (
	ActionSummarize = "summarize"
	ActionResearch  = "research"
	ActionDefine    = "define"
	ActionTranslate = "translate"
	ActionTasks     = "tasks"
	ActionRelated   = "related"
)

// Prompt templates. Each takes the trigger's captured content; the
// translate template additionally takes the target language first.
const (
	PromptSummarize = `Summarize the following text in a few clear sentences. Return only the summary, no preamble.

%s`

	PromptResearch = `Research the following topic and give a concise, factual overview with the most important points.

%s`

	PromptDefine = `Define the following term or concept in plain language. Include a short example if it helps.

%s`

	PromptTranslate = `Translate the following text into %s. Return only the translation.

%s`

	// Fallback templates for list actions when their collaborator is not
	// wired in; the dispatcher then treats them as generic AI actions.
	PromptTasks = `Rewrite the following lines as a clean markdown task list, one "- [ ]" item per line.

%s`

	PromptRelated = `List the topics most closely related to the following content, one per line.

%s`
)

// Output block headings
const (
	ResultHeadingFormat = "### %s Results"
	FailedHeadingFormat = "### %s - Processing Failed"
	MergedHeading       = "## Triggered Actions"

	// FailedPlaceholder is user-visible; raw error detail goes to the log only.
	FailedPlaceholder = "_The request could not be completed. See the service log for details._"
)

// Dispatch defaults
const (
	DefaultRatePerMinute = 10
)
