package services

import (
	"fmt"
	"html/template"
	"log"
	"os"
	"strconv"
	"time"

	"cpms-admin-api/config"
)

// defaultSendDelay is the minimum gap between sequential sends; the SMTP
// relay throttles bursts, so batches are paced rather than fanned out.
const defaultSendDelay = 3 * time.Second

// ReminderBatch carries everything needed to render one reminder message
// for each recipient of a (project, review) pair.
type ReminderBatch struct {
	ProjectName   string
	ReviewLabel   string
	School        string
	Department    string
	Deadline      time.Time
	TimeRemaining string // Overdue switches the message to overdue framing
	Recipients    []string
	RecipientName string
}

// Dispatcher renders and sends reminder messages sequentially, isolating
// per-recipient failures. Rendering is separated from transport so the
// pacing and failure policy can be tested without SMTP.
type Dispatcher struct {
	delay time.Duration

	sendFunc  func(to, subject, html string) error
	sleepFunc func(d time.Duration)
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		delay:     sendDelayFromEnv(),
		sendFunc:  config.SendUrgentMail,
		sleepFunc: time.Sleep,
	}
}

func sendDelayFromEnv() time.Duration {
	ms, err := strconv.Atoi(os.Getenv("REMINDER_SEND_DELAY_MS"))
	if err != nil || ms < 0 {
		return defaultSendDelay
	}
	return time.Duration(ms) * time.Millisecond
}

// DispatchBatch sends one message per recipient and returns the number of
// successful sends. A failed send is logged and does not abort the rest of
// the batch.
func (d *Dispatcher) DispatchBatch(batch ReminderBatch) int {
	subject := batch.Subject()
	html := batch.HTML()

	sent := 0
	for i, to := range batch.Recipients {
		if i > 0 && d.delay > 0 {
			d.sleepFunc(d.delay)
		}
		log.Printf("Sending deadline reminder to %s (%s / %s)", to, batch.ProjectName, batch.ReviewLabel)
		if err := d.sendFunc(to, subject, html); err != nil {
			log.Printf("Failed to send reminder to %s: %v", to, err)
			continue
		}
		sent++
	}
	return sent
}

// IsOverdue reports whether the batch uses overdue framing.
func (b ReminderBatch) IsOverdue() bool {
	return b.TimeRemaining == Overdue
}

// Subject returns the urgency-framed subject line.
func (b ReminderBatch) Subject() string {
	if b.IsOverdue() {
		return fmt.Sprintf("OVERDUE: Review Deadline Passed - %s", b.ReviewLabel)
	}
	return fmt.Sprintf("URGENT: Review Deadline TODAY - %s", b.ReviewLabel)
}

// HTML renders the reminder body. Due-today and overdue messages share the
// same structure and differ only in urgency copy and accent color.
func (b ReminderBatch) HTML() string {
	accent := "#ff9800"
	heading := "DEADLINE TODAY"
	lead := `This is an <strong style="color: #ff9800;">URGENT REMINDER</strong> that the deadline for the review is <strong>TODAY</strong>:`
	banner := fmt.Sprintf("Time Remaining: %s", template.HTMLEscapeString(b.TimeRemaining))
	closing := "Please complete your review TODAY before the deadline to avoid any delays."
	if b.IsOverdue() {
		accent = "#d32f2f"
		heading = "OVERDUE DEADLINE"
		lead = `This is an <strong style="color: #d32f2f;">URGENT NOTICE</strong> that the deadline for the review has PASSED:`
		banner = "DEADLINE HAS PASSED!"
		closing = "Please complete your review IMMEDIATELY to avoid further delays."
	}

	name := b.RecipientName
	if name == "" {
		name = panelSalutation
	}

	return fmt.Sprintf(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px; border: 3px solid %[1]s;">
  <h2 style="color: %[1]s;">%[2]s</h2>
  <p>Dear <strong>%[3]s</strong>,</p>
  <p>%[4]s</p>
  <div style="background-color: #fff3e0; padding: 15px; border-left: 4px solid %[1]s; margin: 15px 0;">
    <h3 style="margin: 0; color: #2455a3;">%[5]s</h3>
    <p style="margin: 5px 0;"><strong>Review:</strong> %[6]s</p>
    <p style="margin: 5px 0;"><strong>School:</strong> %[7]s</p>
    <p style="margin: 5px 0;"><strong>Department:</strong> %[8]s</p>
  </div>
  <div style="background-color: %[1]s; color: white; padding: 15px; text-align: center; margin: 15px 0; border-radius: 5px;">
    <h3 style="margin: 0;">Deadline: %[9]s</h3>
    <p style="margin: 5px 0; font-size: 18px; font-weight: bold;">%[10]s</p>
  </div>
  <p style="font-size: 16px; color: %[1]s; font-weight: bold;">%[11]s</p>
  <p>Best regards,<br><strong>CPMS Team</strong></p>
  <hr style="margin: 20px 0; border: none; border-top: 1px solid #ddd;">
  <p style="font-size: 12px; color: #666;">This is an automated deadline notification. Please do not reply to this email.</p>
</div>`,
		accent,
		heading,
		template.HTMLEscapeString(name),
		lead,
		template.HTMLEscapeString(b.ProjectName),
		template.HTMLEscapeString(b.ReviewLabel),
		template.HTMLEscapeString(b.School),
		template.HTMLEscapeString(b.Department),
		b.Deadline.Format("02 Jan 2006 15:04"),
		banner,
		closing,
	)
}
