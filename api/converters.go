package api

import (
	"scriptureCircle/models"
	"scriptureCircle/services/posting"
	"scriptureCircle/services/prompts"
	"scriptureCircle/services/user"
)

func Deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func (r NoteRequest) ToInput() posting.NoteInput {
	in := posting.NoteInput{
		Scripture:      r.Scripture,
		Chapter:        Deref(r.Chapter),
		Comment:        r.Comment,
		ShareOption:    r.ShareOption,
		CurrentGroupID: Deref(r.CurrentGroupId),
		Language:       Deref(r.Language),
	}
	if r.SelectedShareGroups != nil {
		in.SelectedShareGroups = *r.SelectedShareGroups
	}
	return in
}

func (r MessageRequest) ToInput() posting.MessageInput {
	in := posting.MessageInput{Text: r.Text}
	if r.ReplyTo != nil {
		in.ReplyTo = &models.ReplyTo{
			MessageID:  r.ReplyTo.MessageId,
			Text:       Deref(r.ReplyTo.Text),
			SenderName: Deref(r.ReplyTo.SenderName),
		}
	}
	return in
}

func (r ExplainRequest) ToInput() prompts.ExplainInput {
	return prompts.ExplainInput{
		Scripture: r.Scripture,
		Chapter:   Deref(r.Chapter),
		Language:  Deref(r.Language),
	}
}

func (r ProfileRequest) ToInput() user.ProfileInput {
	return user.ProfileInput{Nickname: r.Nickname, TimeZone: r.TimeZone}
}

func TransformNoteResult(res *posting.NoteResult) NoteResponse {
	shared := res.SharedWithGroups
	if shared == nil {
		shared = []string{}
	}
	return NoteResponse{
		NoteId:           res.NoteID,
		Streak:           res.Streak,
		StreakUpdated:    res.StreakUpdated,
		SharedWithGroups: shared,
	}
}

func TransformMembership(groupID string, u *models.User) MembershipResponse {
	resp := MembershipResponse{GroupId: groupID, GroupIds: []string{}}
	if u != nil {
		resp.PrimaryGroupId = u.GroupID
		if u.GroupIDs != nil {
			resp.GroupIds = u.GroupIDs
		}
	}
	return resp
}
