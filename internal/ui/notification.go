package ui

import (
	"errors"
	"os"
	"os/exec"
	"strings"
)

// icon names, see: https://specifications.freedesktop.org/icon-naming-spec/icon-naming-spec-latest.html
const (
	iconDialogError = "dialog-error"
	iconDialogWarn  = "dialog-warning"

	urgencyNormal   = "normal"
	urgencyCritical = "critical"
)

// NotifyWarn sends a desktop notification for a problem that does not stop a loop.
func NotifyWarn(title, text string) {
	notifySend(urgencyNormal, title, text, iconDialogWarn)
}

// NotifyError sends a desktop notification for a problem that stopped a loop or the daemon.
func NotifyError(title, text string) {
	notifySend(urgencyCritical, title, text, iconDialogError)
}

// notifySend runs notify-send as the owner of the current display session.
// Failures are logged as warnings only, a daemon without a desktop is a valid setup.
func notifySend(urgency, title, text, icon string) {
	display, exists := os.LookupEnv("DISPLAY")
	if !exists {
		Debug("Skipping notification, missing env variable 'DISPLAY'")
		return
	}

	user, err := findDisplayUser(display)
	if err != nil {
		Warning("Cannot send notification: %v", err)
		return
	}

	output, err := exec.Command("id", "-u", user).Output()
	uid := strings.TrimSpace(string(output))
	if err != nil || len(uid) <= 0 {
		Warning("Cannot send notification, unable to detect user id of %s: %v", user, err)
		return
	}

	cmd := exec.Command("sudo", "-u", user,
		"DISPLAY="+display,
		"DBUS_SESSION_BUS_ADDRESS=unix:path=/run/user/"+uid+"/bus",
		"notify-send",
		"-a", "pid2go",
		"-u", urgency,
		"-i", icon,
		title, text,
	)
	if err := cmd.Run(); err != nil {
		Error("Error sending notification: %v", err)
	}
}

func findDisplayUser(display string) (string, error) {
	output, err := exec.Command("who").Output()
	if err != nil {
		return "", err
	}
	for _, line := range strings.Split(string(output), "\n") {
		fields := strings.Fields(line)
		if len(fields) > 0 && strings.Contains(line, display) {
			return fields[0], nil
		}
	}
	return "", errors.New("unable to detect user of current display session")
}
