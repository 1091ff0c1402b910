// Package suggest proposes follow-up tasks.
//
// FromTitles is a deterministic rule engine over the naming convention
// "Project <Name> <Stage>". BuildPrompt and FilterGenerated are the two ends
// of the text-generation path: the prompt sent to a language model and the
// clean-up applied to whatever it returns.
package suggest
