// Package notify sends messages to users
package notify

import (
	"fmt"
	"io"
	"sync"

	"cmscore/models"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

type Notifier interface {
	Notify(user models.User, message string) error
}

// ConsoleNotifier prints notifications to a terminal
type ConsoleNotifier struct {
	Out io.Writer
}

func (n *ConsoleNotifier) Notify(user models.User, message string) error {
	_, err := fmt.Fprintf(n.Out, "\nNotification for %s:\n   %s\n\n", user.FirstName, message)
	return err
}

// EmailNotifier simulates sending an email by writing it to Out
type EmailNotifier struct {
	Out io.Writer
}

func (n *EmailNotifier) Notify(user models.User, message string) error {
	if user.Email == "" {
		return fmt.Errorf("%w: user %s has no email address", models.ErrValidation, user.Username)
	}
	_, err := fmt.Fprintf(n.Out, "Email %s sent to %s: %s\n", uuid.NewString(), user.Email, message)
	return err
}

// LogNotifier keeps every notification and writes it to the log
type LogNotifier struct {
	mu   sync.Mutex
	logs []string
}

func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

func (n *LogNotifier) Notify(user models.User, message string) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.logs = append(n.logs, fmt.Sprintf("[LOG] %s: %s", user.Username, message))
	log.WithFields(log.Fields{
		"user": user.Username,
	}).Info(message)
	return nil
}

func (n *LogNotifier) Logs() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	logs := make([]string, len(n.logs))
	copy(logs, n.logs)
	return logs
}
