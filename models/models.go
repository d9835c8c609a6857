// Package models defines the documents stored for users, groups, messages and notes.
package models

import "time"

// SystemSenderID is the reserved senderId of messages authored by the backend.
const SystemSenderID = "system"

type User struct {
	ID               string     `json:"id" firestore:"id"`
	Nickname         string     `json:"nickname" firestore:"nickname"`
	TimeZone         string     `json:"timeZone" firestore:"timeZone"`
	Language         string     `json:"language,omitempty" firestore:"language,omitempty"`
	GroupID          string     `json:"groupId" firestore:"groupId"`
	GroupIDs         []string   `json:"groupIds" firestore:"groupIds"`
	StreakCount      int        `json:"streakCount" firestore:"streakCount"`
	LastPostDate     *time.Time `json:"lastPostDate" firestore:"lastPostDate"`
	TotalNotes       int        `json:"totalNotes" firestore:"totalNotes"`
	DaysStudiedCount int        `json:"daysStudiedCount" firestore:"daysStudiedCount"`
	FCMTokens        []string   `json:"-" firestore:"fcmTokens"`
	CreatedAt        time.Time  `json:"createdAt" firestore:"createdAt"`
}

// InGroup reports whether groupID is listed in the user's groupIds.
func (u *User) InGroup(groupID string) bool {
	for _, id := range u.GroupIDs {
		if id == groupID {
			return true
		}
	}
	return false
}

// Location returns the user's time zone, falling back to UTC when unset or unknown.
func (u *User) Location() *time.Location {
	if u.TimeZone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(u.TimeZone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// DailyActivity tracks which members posted on a given UTC date.
type DailyActivity struct {
	Date          string   `json:"date" firestore:"date"`
	ActiveMembers []string `json:"activeMembers" firestore:"activeMembers"`
}

type Group struct {
	ID                   string               `json:"id" firestore:"id"`
	Name                 string               `json:"name" firestore:"name"`
	OwnerUserID          string               `json:"ownerUserId" firestore:"ownerUserId"`
	Members              []string             `json:"members" firestore:"members"`
	MembersCount         int                  `json:"membersCount" firestore:"membersCount"`
	MaxMembers           int                  `json:"maxMembers" firestore:"maxMembers"`
	IsPublic             bool                 `json:"isPublic" firestore:"isPublic"`
	MemberLastActive     map[string]time.Time `json:"memberLastActive" firestore:"memberLastActive"`
	MemberLastReadAt     map[string]time.Time `json:"memberLastReadAt,omitempty" firestore:"memberLastReadAt,omitempty"`
	MemberTrackedAt      map[string]time.Time `json:"memberTrackedAt,omitempty" firestore:"memberTrackedAt,omitempty"`
	MessageCount         int                  `json:"messageCount" firestore:"messageCount"`
	NoteCount            int                  `json:"noteCount" firestore:"noteCount"`
	LastMessageAt        *time.Time           `json:"lastMessageAt" firestore:"lastMessageAt"`
	LastNoteAt           *time.Time           `json:"lastNoteAt,omitempty" firestore:"lastNoteAt,omitempty"`
	LastActivityBy       string               `json:"lastActivityBy,omitempty" firestore:"lastActivityBy,omitempty"`
	LastActivityByName   string               `json:"lastActivityByName,omitempty" firestore:"lastActivityByName,omitempty"`
	LastMessagePreview   string               `json:"lastMessagePreview,omitempty" firestore:"lastMessagePreview,omitempty"`
	LastRecapGeneratedAt *time.Time           `json:"lastRecapGeneratedAt,omitempty" firestore:"lastRecapGeneratedAt,omitempty"`
	DailyActivity        *DailyActivity       `json:"dailyActivity,omitempty" firestore:"dailyActivity,omitempty"`
	CreatedAt            time.Time            `json:"createdAt" firestore:"createdAt"`
}

// HasMember reports whether userID is listed in members.
func (g *Group) HasMember(userID string) bool {
	for _, id := range g.Members {
		if id == userID {
			return true
		}
	}
	return false
}

// MessageType tags the variant of a Message.
type MessageType string

const (
	MessageTypeChat               MessageType = "chat"
	MessageTypeNoteShare          MessageType = "noteShare"
	MessageTypeUserJoined         MessageType = "userJoined"
	MessageTypeUserLeft           MessageType = "userLeft"
	MessageTypeStreakAnnouncement MessageType = "streakAnnouncement"
	MessageTypeWeeklyRecap        MessageType = "weeklyRecap"
	MessageTypeOwnershipChanged   MessageType = "ownershipChanged"
	MessageTypeMembersRemoved     MessageType = "membersRemoved"
)

// ReplyTo is a weak reference to another message with denormalized preview fields.
type ReplyTo struct {
	MessageID  string `json:"messageId" firestore:"messageId"`
	Text       string `json:"text" firestore:"text"`
	SenderName string `json:"senderName" firestore:"senderName"`
}

type Message struct {
	ID              string      `json:"id" firestore:"id"`
	Text            string      `json:"text" firestore:"text"`
	SenderID        string      `json:"senderId" firestore:"senderId"`
	SenderName      string      `json:"senderName" firestore:"senderName"`
	CreatedAt       time.Time   `json:"createdAt" firestore:"createdAt"`
	IsSystemMessage bool        `json:"isSystemMessage" firestore:"isSystemMessage"`
	MessageType     MessageType `json:"messageType" firestore:"messageType"`
	IsNote          bool        `json:"isNote" firestore:"isNote"`
	NoteID          string      `json:"noteId,omitempty" firestore:"noteId,omitempty"`
	Scripture       string      `json:"scripture,omitempty" firestore:"scripture,omitempty"`
	Chapter         string      `json:"chapter,omitempty" firestore:"chapter,omitempty"`
	ReplyTo         *ReplyTo    `json:"replyTo,omitempty" firestore:"replyTo,omitempty"`
}

// NewSystemMessage builds a message authored by the backend.
func NewSystemMessage(id string, kind MessageType, text string, at time.Time) *Message {
	return &Message{
		ID:              id,
		Text:            text,
		SenderID:        SystemSenderID,
		SenderName:      "System",
		CreatedAt:       at,
		IsSystemMessage: true,
		MessageType:     kind,
	}
}

// ShareOption tags how a note is fanned out to groups.
type ShareOption string

const (
	ShareAll      ShareOption = "all"
	ShareCurrent  ShareOption = "current"
	ShareSpecific ShareOption = "specific"
	ShareNone     ShareOption = "none"
)

// Valid reports whether o is one of the known variants.
func (o ShareOption) Valid() bool {
	switch o {
	case ShareAll, ShareCurrent, ShareSpecific, ShareNone:
		return true
	}
	return false
}

type Note struct {
	ID               string            `json:"id" firestore:"id"`
	Text             string            `json:"text" firestore:"text"`
	Scripture        string            `json:"scripture" firestore:"scripture"`
	Chapter          string            `json:"chapter" firestore:"chapter"`
	Comment          string            `json:"comment" firestore:"comment"`
	Language         string            `json:"language,omitempty" firestore:"language,omitempty"`
	ShareOption      ShareOption       `json:"shareOption" firestore:"shareOption"`
	SharedWithGroups []string          `json:"sharedWithGroups" firestore:"sharedWithGroups"`
	SharedMessageIDs map[string]string `json:"sharedMessageIds" firestore:"sharedMessageIds"`
	CreatedAt        time.Time         `json:"createdAt" firestore:"createdAt"`
}

// GroupState is a user's read position inside one group.
type GroupState struct {
	GroupID          string    `json:"groupId" firestore:"groupId" structs:"groupId"`
	LastReadAt       time.Time `json:"lastReadAt" firestore:"lastReadAt" structs:"lastReadAt,omitnested"`
	ReadMessageCount int       `json:"readMessageCount" firestore:"readMessageCount" structs:"-"`
}
