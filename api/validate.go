package api

import (
	"strings"
	"unicode/utf8"

	"scriptureCircle/errs"
	"scriptureCircle/models"
)

const (
	maxScripture      = 200
	maxChapter        = 50
	maxComment        = 10000
	maxMessage        = 5000
	maxLanguage       = 10
	maxSelectedGroups = 20
)

func (r MessageRequest) Validate() error {
	if strings.TrimSpace(r.Text) == "" {
		return errs.Validation("text is required")
	}
	if utf8.RuneCountInString(r.Text) > maxMessage {
		return errs.Validation("text exceeds %d characters", maxMessage)
	}
	if r.ReplyTo != nil && r.ReplyTo.MessageId == "" {
		return errs.Validation("replyTo.messageId is required")
	}
	return nil
}

func tooLong(s *string, n int) bool {
	return s != nil && utf8.RuneCountInString(*s) > n
}

func (r NoteRequest) Validate() error {
	if strings.TrimSpace(r.Scripture) == "" {
		return errs.Validation("scripture is required")
	}
	if utf8.RuneCountInString(r.Scripture) > maxScripture {
		return errs.Validation("scripture exceeds %d characters", maxScripture)
	}
	if tooLong(r.Chapter, maxChapter) {
		return errs.Validation("chapter exceeds %d characters", maxChapter)
	}
	if strings.TrimSpace(r.Comment) == "" {
		return errs.Validation("comment is required")
	}
	if utf8.RuneCountInString(r.Comment) > maxComment {
		return errs.Validation("comment exceeds %d characters", maxComment)
	}
	if !r.ShareOption.Valid() {
		return errs.Validation("unknown share option %q", r.ShareOption)
	}
	groups := 0
	if r.SelectedShareGroups != nil {
		groups = len(*r.SelectedShareGroups)
	}
	if groups > maxSelectedGroups {
		return errs.Validation("at most %d groups can be selected", maxSelectedGroups)
	}
	if r.ShareOption == models.ShareSpecific && groups == 0 {
		return errs.Validation("selectedShareGroups is required for specific sharing")
	}
	if tooLong(r.Language, maxLanguage) {
		return errs.Validation("language exceeds %d characters", maxLanguage)
	}
	return nil
}

func (r ExplainRequest) Validate() error {
	if strings.TrimSpace(r.Scripture) == "" {
		return errs.Validation("scripture is required")
	}
	if utf8.RuneCountInString(r.Scripture) > maxScripture || tooLong(r.Chapter, maxChapter) || tooLong(r.Language, maxLanguage) {
		return errs.Validation("request field exceeds its maximum length")
	}
	return nil
}
