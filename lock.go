package viewport

import "github.com/google/uuid"

// LockToken identifies a claimant of the input lock. Tokens are comparable
// values; two tokens are the same owner only if they came from the same
// NewLockToken call (or are copies of it).
type LockToken struct {
	id    uuid.UUID
	label string
}

// NewLockToken returns a fresh token. The label only appears in diagnostics.
func NewLockToken(label string) LockToken {
	return LockToken{id: uuid.New(), label: label}
}

// IsZero reports whether t is the zero token, which never owns the lock.
func (t LockToken) IsZero() bool { return t.id == uuid.Nil }

func (t LockToken) String() string {
	if t.label == "" {
		return t.id.String()
	}
	return t.label + "/" + t.id.String()
}

// InputLock is an advisory single-owner claim on viewport input. It does not
// gate event delivery; listeners consult it before acting.
type InputLock struct {
	owner LockToken
	held  bool
}

// IsUnlocked reports whether tok may act: nobody holds the lock, or tok does.
func (l *InputLock) IsUnlocked(tok LockToken) bool {
	return !l.held || l.owner == tok
}

// Acquire claims the lock for tok. It returns true if tok owns the lock
// afterwards, which includes re-acquiring a lock tok already holds. A
// different owner is never displaced. The zero token cannot acquire.
func (l *InputLock) Acquire(tok LockToken) bool {
	if tok.IsZero() {
		return false
	}
	if !l.held {
		l.owner = tok
		l.held = true
	}
	return l.owner == tok
}

// Release clears the lock if tok owns it; otherwise it does nothing. It
// returns true if the lock is free afterwards.
func (l *InputLock) Release(tok LockToken) bool {
	if l.held && l.owner == tok {
		l.owner = LockToken{}
		l.held = false
	}
	return !l.held
}

// Owner returns the current owner, if any.
func (l *InputLock) Owner() (LockToken, bool) {
	return l.owner, l.held
}
