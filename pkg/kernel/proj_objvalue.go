package kernel

import (
	"net/mail"
	"strings"
)

type JobTitle string

type JobDescription string

type Email string

func (e Email) String() string { return string(e) }
func (e Email) IsEmpty() bool  { return strings.TrimSpace(string(e)) == "" }

// IsValid checks the address parses as a single RFC 5322 mailbox
func (e Email) IsValid() bool {
	addr, err := mail.ParseAddress(string(e))
	return err == nil && addr.Address == string(e)
}

// WorkMode is where the job is performed
type WorkMode string

const (
	WorkModeOnSite WorkMode = "on-site"
	WorkModeRemote WorkMode = "remote"
	WorkModeHybrid WorkMode = "hybrid"
)

func (w WorkMode) IsValid() bool {
	switch w {
	case WorkModeOnSite, WorkModeRemote, WorkModeHybrid:
		return true
	}
	return false
}

// ShiftTiming is the kind of working schedule
type ShiftTiming string

const (
	ShiftFullTime  ShiftTiming = "full-time"
	ShiftPartTime  ShiftTiming = "part-time"
	ShiftContract  ShiftTiming = "contract"
	ShiftFreelance ShiftTiming = "freelance"
)

// ExperienceBracket is a years-of-experience range such as "1-3"
type ExperienceBracket string

var ExperienceBrackets = []ExperienceBracket{"0-1", "1-3", "3-5", "5-7", "7-10", "10+"}

func (b ExperienceBracket) IsValid() bool {
	for _, v := range ExperienceBrackets {
		if v == b {
			return true
		}
	}
	return false
}
