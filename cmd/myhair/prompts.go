package main

import "github.com/AlecAivazis/survey/v2"

// Wrapper for survey functions to allow mocking in tests
var (
	askOneFunc = survey.AskOne
)

// promptIfEmpty asks for a required value unless a flag already set it.
func promptIfEmpty(value *string, prompt survey.Prompt) error {
	if *value != "" {
		return nil
	}
	return askOneFunc(prompt, value, survey.WithValidator(survey.Required))
}
