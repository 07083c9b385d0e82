package telegram

import "fmt"

// Deep links keep the user inside the host platform: the success screen of a
// purchase must never navigate to a plain web page.

// BotDeepLink builds a start link for this bot with a payload.
func BotDeepLink(botUsername, payload string) string {
	if payload == "" {
		return fmt.Sprintf("https://t.me/%s", botUsername)
	}
	return fmt.Sprintf("https://t.me/%s?start=%s", botUsername, payload)
}

// UserChatLink builds a direct chat link for a username.
func UserChatLink(username string) string {
	return fmt.Sprintf("https://t.me/%s", username)
}

// DoctorStartPayload encodes a doctor profile deep link payload.
func DoctorStartPayload(doctorID int64) string {
	return fmt.Sprintf("d_%d", doctorID)
}
