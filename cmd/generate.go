package cmd

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/zpam/nbayes/pkg/document"
)

var (
	generateCount  int
	generateOutput string
	generateSplit  float64
	generateSeed   int64
	generateFormat string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a labeled test corpus",
	Long: `Generate a synthetic corpus into <output>/ham and <output>/spam for training
and evaluation.

The raw format writes "Subject: ..." headed text files; the mail format writes
full RFC 5322 messages.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if generateCount <= 0 {
			return fmt.Errorf("count must be greater than 0")
		}

		if generateSplit < 0 || generateSplit > 1 {
			return fmt.Errorf("spam-ratio must be between 0 and 1")
		}

		format, err := document.ParseFormat(generateFormat)
		if err != nil {
			return err
		}

		seed := generateSeed
		if !cmd.Flags().Changed("seed") {
			seed = time.Now().UnixNano()
		}
		generator := NewEmailGenerator(seed)

		// Calculate spam vs ham counts
		spamCount := int(float64(generateCount) * generateSplit)
		hamCount := generateCount - spamCount

		fmt.Printf("🧪 Generating test corpus...\n")
		fmt.Printf("📧 Total documents: %d\n", generateCount)
		fmt.Printf("🚫 Spam documents: %d (%.1f%%)\n", spamCount, generateSplit*100)
		fmt.Printf("✅ Ham documents: %d (%.1f%%)\n", hamCount, (1-generateSplit)*100)
		fmt.Printf("📂 Output directory: %s\n", generateOutput)
		fmt.Printf("🎲 Seed: %d\n\n", seed)

		start := time.Now()

		if err := generator.WriteCorpus(filepath.Join(generateOutput, "spam"), "spam", spamCount, format, generator.GenerateSpamEmail); err != nil {
			return err
		}
		if err := generator.WriteCorpus(filepath.Join(generateOutput, "ham"), "ham", hamCount, format, generator.GenerateHamEmail); err != nil {
			return err
		}

		duration := time.Since(start)

		fmt.Printf("✅ Generation complete!\n")
		fmt.Printf("⏱️ Time taken: %v\n", duration)
		fmt.Printf("🚀 Next: nbayes train --ham-dir %s --spam-dir %s\n",
			filepath.Join(generateOutput, "ham"), filepath.Join(generateOutput, "spam"))

		return nil
	},
}

// EmailGenerator generates a synthetic labeled corpus
type EmailGenerator struct {
	rand *rand.Rand

	// Templates and data
	spamSubjects []string
	hamSubjects  []string
	spamBodies   []string
	hamBodies    []string
	spamDomains  []string
	hamDomains   []string
	spamKeywords []string
	names        []string
}

// NewEmailGenerator creates a generator; equal seeds produce equal corpora
func NewEmailGenerator(seed int64) *EmailGenerator {
	return &EmailGenerator{
		rand: rand.New(rand.NewSource(seed)),

		spamSubjects: []string{
			"URGENT!!! FREE MONEY!!!",
			"You have won $1,000,000!!!",
			"ACT NOW - Limited time offer!",
			"Get rich quick - GUARANTEED!",
			"Nigerian Prince needs your help",
			"FREE Viagra - No prescription needed",
			"Lose 50 pounds in 10 days!",
			"Work from home - Make $5000/week",
			"CONGRATULATIONS - You're our winner!",
			"Click here for FREE gift cards",
			"Urgent: Your account will be closed",
			"Amazing investment opportunity",
		},

		hamSubjects: []string{
			"Meeting tomorrow at 2 PM",
			"Quarterly report attached",
			"Project update - Phase 2 complete",
			"Happy birthday!",
			"Weekend plans?",
			"Conference call notes",
			"Invoice #12345",
			"Welcome to our team",
			"System maintenance notice",
			"Monthly newsletter",
			"Re: Budget approval",
			"Lunch invitation",
		},

		spamBodies: []string{
			"Congratulations! You have been selected to receive FREE MONEY! No risk involved! GUARANTEED income! Act now before this offer expires! Click here: %s",
			"URGENT! Your account will be suspended unless you verify your information immediately! Click here to avoid suspension: %s",
			"Make money fast with our proven system! Thousands are already earning $10,000 per week! Join now: %s",
			"You have won our lottery! Claim your $1,000,000 prize now! Send your bank details to claim: %s",
			"Lose weight fast with our miracle pill! No diet or exercise needed! Order now: %s",
			"Get Viagra without prescription! Best prices guaranteed! Free shipping worldwide! Order: %s",
		},

		hamBodies: []string{
			"Hi there,\n\nI hope this email finds you well. I wanted to remind you about our meeting tomorrow at 2 PM in the conference room.\n\nWe'll be discussing the quarterly reports and planning for next quarter.\n\nPlease let me know if you need to reschedule.\n\nBest regards,\n%s",
			"Hello,\n\nPlease find attached the quarterly report for your review. The numbers look good overall, with a 15%% increase in revenue.\n\nLet me know if you have any questions.\n\nThanks,\n%s",
			"Hi team,\n\nJust a quick update on the project progress. Phase 2 has been completed successfully and we're on track for the deadline.\n\nNext steps:\n- Review deliverables\n- Prepare for Phase 3\n- Schedule team meeting\n\nBest,\n%s",
			"Dear %s,\n\nWe're planning a team lunch this Friday at 12:30 PM. Please let me know if you can make it.\n\nLooking forward to seeing everyone!\n\nRegards,\n%s",
			"Hi %s,\n\nThe build on the release branch is green again. I merged the fix for the flaky test and updated the changelog.\n\nCheers,\n%s",
			"Hello,\n\nAttached are the minutes from the budget review. Action items are at the bottom, owners are listed next to each one.\n\n%s",
		},

		spamDomains: []string{
			"get-rich-quick.com", "suspicious-domain.org", "free-money.net", "scam-alert.biz",
			"fake-bank.com", "phishing-site.net", "malware-host.org", "spam-central.com",
			"dodgy-pharma.net", "lottery-scam.org", "virus-download.com", "identity-theft.biz",
		},

		hamDomains: []string{
			"gmail.com", "yahoo.com", "outlook.com", "company.com", "university.edu",
			"government.gov", "nonprofit.org", "corporation.net", "startup.io", "tech-firm.com",
			"consulting.biz", "healthcare.org", "finance.com", "retail.net", "manufacturing.com",
		},

		spamKeywords: []string{
			"free money", "get rich", "make money fast", "guaranteed income", "no risk",
			"act now", "limited time", "urgent", "congratulations", "you have won",
			"lottery", "viagra", "lose weight", "work from home", "click here",
		},

		names: []string{
			"John Smith", "Jane Doe", "Mike Johnson", "Sarah Wilson", "David Brown",
			"Lisa Garcia", "Robert Miller", "Emily Davis", "Michael Anderson", "Jennifer Taylor",
			"Christopher Martinez", "Amanda Thomas", "Matthew Jackson", "Jessica White", "Daniel Harris",
		},
	}
}

// Message is one generated email
type Message struct {
	From    string
	To      string
	Subject string
	Body    string
	Date    time.Time
	ID      int64
}

// Raw renders the message as a "Subject:" headed document
func (m Message) Raw() string {
	return fmt.Sprintf("Subject: %s\n%s\n", m.Subject, m.Body)
}

// EML renders the message as an RFC 5322 email
func (m Message) EML() string {
	return fmt.Sprintf(`From: %s
To: %s
Subject: %s
Date: %s
Message-ID: <%d@%s>

%s
`,
		m.From,
		m.To,
		m.Subject,
		m.Date.Format("Mon, 02 Jan 2006 15:04:05 -0700"),
		m.ID,
		"generator.local",
		m.Body,
	)
}

// GenerateSpamEmail generates a spam message
func (g *EmailGenerator) GenerateSpamEmail() Message {
	subject := g.addSpamCharacteristics(g.randomChoice(g.spamSubjects))
	return g.newMessage(g.generateSpamSender(), subject, g.generateSpamBody())
}

// GenerateHamEmail generates a ham message
func (g *EmailGenerator) GenerateHamEmail() Message {
	return g.newMessage(g.generateHamSender(), g.randomChoice(g.hamSubjects), g.generateHamBody())
}

// WriteCorpus writes count messages into dir, one file per message
func (g *EmailGenerator) WriteCorpus(dir, prefix string, count int, format document.Format, next func() Message) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	for i := 0; i < count; i++ {
		msg := next()
		content, ext := msg.Raw(), ".txt"
		if format == document.FormatMail {
			content, ext = msg.EML(), ".eml"
		}

		filename := filepath.Join(dir, fmt.Sprintf("%s_%04d%s", prefix, i+1, ext))
		if err := os.WriteFile(filename, []byte(content), 0644); err != nil {
			return fmt.Errorf("failed to write %s document %d: %w", prefix, i+1, err)
		}
	}
	return nil
}

func (g *EmailGenerator) newMessage(from, subject, body string) Message {
	return Message{
		From:    from,
		To:      g.generateRecipient(),
		Subject: subject,
		Body:    body,
		Date:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(g.rand.Intn(365*24)) * time.Hour),
		ID:      g.rand.Int63(),
	}
}

// generateSpamSender creates a suspicious sender address
func (g *EmailGenerator) generateSpamSender() string {
	domain := g.randomChoice(g.spamDomains)
	usernames := []string{"noreply", "admin", "support", "winner", "lottery", "offer", "deals"}
	username := g.randomChoice(usernames)
	return fmt.Sprintf("%s@%s", username, domain)
}

// generateHamSender creates a legitimate sender address
func (g *EmailGenerator) generateHamSender() string {
	domain := g.randomChoice(g.hamDomains)
	name := g.randomChoice(g.names)
	nameParts := strings.Split(strings.ToLower(name), " ")
	username := fmt.Sprintf("%s.%s", nameParts[0], nameParts[1])
	return fmt.Sprintf("%s@%s", username, domain)
}

// generateRecipient creates a recipient address
func (g *EmailGenerator) generateRecipient() string {
	domains := []string{"example.com", "test.org", "demo.net", "sample.biz"}
	domain := g.randomChoice(domains)
	usernames := []string{"user", "customer", "employee", "member", "subscriber"}
	username := g.randomChoice(usernames)
	return fmt.Sprintf("%s@%s", username, domain)
}

// generateSpamBody creates spam email body
func (g *EmailGenerator) generateSpamBody() string {
	template := g.randomChoice(g.spamBodies)
	link := fmt.Sprintf("http://%s/click-here", g.randomChoice(g.spamDomains))
	return fmt.Sprintf(template, link)
}

// generateHamBody creates legitimate email body
func (g *EmailGenerator) generateHamBody() string {
	template := g.randomChoice(g.hamBodies)
	args := make([]any, strings.Count(template, "%s"))
	for i := range args {
		args[i] = g.randomChoice(g.names)
	}
	return fmt.Sprintf(template, args...)
}

// addSpamCharacteristics adds typical spam characteristics
func (g *EmailGenerator) addSpamCharacteristics(subject string) string {
	// Randomly add excessive punctuation
	if g.rand.Float64() < 0.7 {
		subject = strings.ReplaceAll(subject, "!", "!!!")
	}

	// Randomly convert to uppercase
	if g.rand.Float64() < 0.5 {
		subject = strings.ToUpper(subject)
	}

	// Add extra spam keywords
	if g.rand.Float64() < 0.3 {
		keyword := g.randomChoice(g.spamKeywords)
		subject = fmt.Sprintf("%s - %s", subject, strings.ToUpper(keyword))
	}

	return subject
}

// randomChoice selects a random item from slice
func (g *EmailGenerator) randomChoice(items []string) string {
	return items[g.rand.Intn(len(items))]
}

func init() {
	generateCmd.Flags().IntVarP(&generateCount, "count", "n", 100, "Number of documents to generate")
	generateCmd.Flags().StringVarP(&generateOutput, "output", "o", "test-data", "Output directory")
	generateCmd.Flags().Float64VarP(&generateSplit, "spam-ratio", "r", 0.3, "Ratio of spam documents (0.0-1.0)")
	generateCmd.Flags().Int64Var(&generateSeed, "seed", 0, "Random seed (default: time based)")
	generateCmd.Flags().StringVar(&generateFormat, "format", "raw", "Document format: raw, mail")
}
