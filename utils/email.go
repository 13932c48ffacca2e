package utils

import (
	"crypto/tls"
	"fmt"
	"net/smtp"
	"os"
	"sync"
)

// ======================
// SMTP Configuration
// ======================
var (
	smtpHost      = os.Getenv("SMTP_HOST")
	smtpPort      = os.Getenv("SMTP_PORT")
	smtpUsername  = os.Getenv("SMTP_USERNAME")
	smtpPassword  = os.Getenv("SMTP_PASSWORD")
	smtpFromName  = os.Getenv("SMTP_FROM_NAME")
	smtpFromEmail = os.Getenv("SMTP_FROM_EMAIL")
	frontendURL   = os.Getenv("FRONTEND_URL")
)

// SendEmail delivers a single plain-text email over SMTP with STARTTLS.
// A missing SMTP config logs and returns nil so local dev works offline.
func SendEmail(to, subject, body string) error {
	if smtpHost == "" || smtpUsername == "" || smtpPassword == "" {
		fmt.Println("⚠️ SMTP not configured. Email not sent.")
		return nil
	}

	if smtpFromEmail == "" {
		smtpFromEmail = smtpUsername
	}

	addr := fmt.Sprintf("%s:%s", smtpHost, smtpPort)

	// Dial plain first, then upgrade with StartTLS
	client, err := smtp.Dial(addr)
	if err != nil {
		return fmt.Errorf("failed to dial SMTP server: %w", err)
	}
	defer client.Close()

	tlsConfig := &tls.Config{
		InsecureSkipVerify: true, // Docker environments
		ServerName:         smtpHost,
	}

	if err = client.StartTLS(tlsConfig); err != nil {
		return fmt.Errorf("failed to start TLS: %w", err)
	}

	auth := smtp.PlainAuth("", smtpUsername, smtpPassword, smtpHost)
	if err := client.Auth(auth); err != nil {
		return fmt.Errorf("authentication failed: %w", err)
	}

	if err := client.Mail(smtpFromEmail); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}
	if err := client.Rcpt(to); err != nil {
		return fmt.Errorf("failed to set recipient: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to get data writer: %w", err)
	}

	from := smtpFromName
	if from == "" {
		from = smtpFromEmail
	} else {
		from = fmt.Sprintf("%s <%s>", smtpFromName, smtpFromEmail)
	}

	msg := []byte(fmt.Sprintf("From: %s\r\n"+
		"To: %s\r\n"+
		"Subject: %s\r\n"+
		"MIME-Version: 1.0\r\n"+
		"Content-Type: text/plain; charset=UTF-8\r\n"+
		"\r\n%s", from, to, subject, body))

	if _, err = w.Write(msg); err != nil {
		w.Close()
		return fmt.Errorf("failed to write message: %w", err)
	}
	if err = w.Close(); err != nil {
		return fmt.Errorf("failed to close writer: %w", err)
	}

	if err := client.Quit(); err != nil {
		fmt.Printf("⚠️ QUIT command error (non-critical): %v\n", err)
	}

	return nil
}

// ======================
// Async bulk email sender
// ======================
func SendBulkEmailsAsync(recipients []string, subject, body string) {
	go func() {
		var wg sync.WaitGroup
		for _, email := range recipients {
			wg.Add(1)
			go func(to string) {
				defer wg.Done()
				if err := SendEmail(to, subject, body); err != nil {
					fmt.Printf("❌ Failed to send email to %s: %v\n", to, err)
				}
			}(email)
		}
		wg.Wait()
	}()
}

// ======================
// Password Reset
// ======================
func SendResetLink(toEmail string, resetToken string) error {
	baseURL := frontendURL
	if baseURL == "" {
		baseURL = "http://localhost:5173"
		fmt.Println("⚠️ FRONTEND_URL not set, using default:", baseURL)
	}

	resetURL := fmt.Sprintf("%s/auth/reset-password?token=%s", baseURL, resetToken)
	subject := "Reset your password"
	body := fmt.Sprintf("Click here to reset your password: %s\n\nIf you did not request this password reset, please ignore this email.", resetURL)

	return SendEmail(toEmail, subject, body)
}

// ======================
// Organizer Verification Emails
// ======================
func SendOrganizerApprovalEmail(toEmail, fullName string) {
	subject := "Your organizer account has been verified"
	body := fmt.Sprintf("Hello %s, your organizer account has been verified by the admin team. You can now create and publish events.", fullName)
	_ = SendEmail(toEmail, subject, body)
}

func SendOrganizerDeclineEmail(toEmail, fullName, reason string) {
	subject := "Your organizer application was declined"
	body := fmt.Sprintf("Hello %s, your organizer application was declined.\nReason: %s", fullName, reason)
	_ = SendEmail(toEmail, subject, body)
}

// ======================
// Event Emails
// ======================
func SendEventApprovalEmail(toEmail, fullName, eventName string) {
	subject := fmt.Sprintf("Your Event \"%s\" Has Been Approved", eventName)
	body := fmt.Sprintf("Hello %s, your event \"%s\" has been approved and is now visible to participants.", fullName, eventName)
	_ = SendEmail(toEmail, subject, body)
}

func SendEventRejectionEmail(toEmail, fullName, eventName, reason string) {
	subject := fmt.Sprintf("Your Event \"%s\" Was Declined", eventName)
	body := fmt.Sprintf("Hello %s, your event \"%s\" was declined.\nReason: %s", fullName, eventName, reason)
	_ = SendEmail(toEmail, subject, body)
}

// SendRegistrationConfirmation carries the organizer's after-registration
// message when one is set.
func SendRegistrationConfirmation(toEmail, fullName, eventName, afterMessage string) {
	subject := fmt.Sprintf("You're registered for \"%s\"", eventName)
	body := fmt.Sprintf("Hello %s, your registration for \"%s\" is confirmed.", fullName, eventName)
	if afterMessage != "" {
		body += "\n\n" + afterMessage
	}
	_ = SendEmail(toEmail, subject, body)
}
