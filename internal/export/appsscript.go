// Package export renders a finished question set as a Google Apps Script
// that recreates the assessment as a Google Form. This is a pure
// data-to-text transform; the script is executed by the forms product,
// never here.
package export

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/abhisek/quizwizard/internal/quizgen"
)

// Options carries the metadata rendered into the script header.
type Options struct {
	// Topic titles the form. Empty falls back to "Generated Quiz".
	Topic string

	// Difficulty is the requested level (1-10) shown in the description.
	Difficulty int

	// SourceName is the uploaded document's name. Empty falls back to
	// "Uploaded Document".
	SourceName string
}

// scriptQuestion is the shape embedded in the script body.
type scriptQuestion struct {
	Text        string   `json:"text"`
	Options     []string `json:"options"`
	Correct     string   `json:"correct"`
	Explanation string   `json:"explanation"`
}

// AppsScript renders the given questions as a deterministic Apps Script
// text blob. The same input always produces the same output.
func AppsScript(questions []quizgen.Question, opts Options) (string, error) {
	items := make([]scriptQuestion, len(questions))
	for i, q := range questions {
		items[i] = scriptQuestion{
			Text:        q.Prompt,
			Options:     q.Options,
			Correct:     q.CorrectAnswer,
			Explanation: q.Explanation,
		}
	}

	itemsJSON, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal questions: %w", err)
	}

	topic := opts.Topic
	if topic == "" {
		topic = "Generated Quiz"
	}
	source := opts.SourceName
	if source == "" {
		source = "Uploaded Document"
	}

	var b strings.Builder
	fmt.Fprintf(&b, `function createQuizWizardQuiz() {
  try {
    // 1. Create a new Google Form
    var title = "QuizWizard: %s";
    var form = FormApp.create(title);

    form.setDescription("Generated by QuizWizard AI.\nDifficulty Level: %d/10\nSource: %s");
    form.setIsQuiz(true);
    form.setConfirmationMessage("Thank you for completing the assessment!");

    var questions = %s;

    // 2. Add Questions
    questions.forEach(function(q, index) {
      var item = form.addMultipleChoiceItem();
      item.setTitle((index + 1) + ". " + q.text);

      var choices = q.options.map(function(opt) {
        return item.createChoice(opt, opt === q.correct);
      });

      item.setChoices(choices);
      item.setPoints(1);
      item.setRequired(true);

      if (q.explanation) {
        var feedback = FormApp.createFeedback()
          .setText(q.explanation)
          .build();
        item.setFeedbackForCorrect(feedback);
        item.setFeedbackForIncorrect(feedback);
      }
    });

    Logger.log("\nSUCCESS! Form Created.");
    Logger.log("Edit URL: " + form.getEditUrl());
    Logger.log("Published URL: " + form.getPublishedUrl());

  } catch (e) {
    Logger.log("Error: " + e.toString());
  }
}
`,
		escapeString(topic),
		opts.Difficulty,
		escapeString(source),
		escapeTemplate(string(itemsJSON)),
	)

	return b.String(), nil
}

// escapeString makes a value safe inside a double-quoted script literal.
func escapeString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	s = strings.ReplaceAll(s, "`", "\\`")
	s = strings.ReplaceAll(s, "\n", `\n`)
	return s
}

// escapeTemplate neutralizes backticks so embedded JSON cannot terminate
// a template literal in the generated script.
func escapeTemplate(s string) string {
	return strings.ReplaceAll(s, "`", "\\`")
}
