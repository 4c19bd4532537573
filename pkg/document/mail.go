package document

import (
	"bytes"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/mail"
	"os"
	"path/filepath"
	"strings"
)

// MailDocument reads an RFC 5322 message and presents it as
// "Subject: <subject>" followed by the text parts of the body.
type MailDocument struct {
	path string
}

// Mail returns a document backed by the mail file at path
func Mail(path string) *MailDocument {
	return &MailDocument{path: path}
}

// Name returns the base name of the file
func (m *MailDocument) Name() string {
	return filepath.Base(m.path)
}

// Open parses the message and returns its rendered text
func (m *MailDocument) Open() (io.ReadCloser, error) {
	file, err := os.Open(m.path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	text, err := renderMessage(file)
	if err != nil {
		return nil, fmt.Errorf("failed to parse mail %s: %w", m.Name(), err)
	}

	return io.NopCloser(strings.NewReader(text)), nil
}

// renderMessage flattens a message into a Subject line plus body text
func renderMessage(r io.Reader) (string, error) {
	msg, err := mail.ReadMessage(r)
	if err != nil {
		return "", err
	}

	body, err := readBody(msg)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString("Subject: ")
	sb.WriteString(msg.Header.Get("Subject"))
	sb.WriteString("\n")
	sb.WriteString(body)
	return sb.String(), nil
}

// readBody returns the text content of the message, skipping attachments
func readBody(msg *mail.Message) (string, error) {
	contentType := msg.Header.Get("Content-Type")
	if contentType == "" {
		body, err := io.ReadAll(msg.Body)
		return string(body), err
	}

	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		// Unparseable content type, treat as plain text
		body, err := io.ReadAll(msg.Body)
		return string(body), err
	}

	if strings.HasPrefix(mediaType, "multipart/") {
		return readMultipart(msg.Body, params["boundary"])
	}

	body, err := io.ReadAll(msg.Body)
	return string(body), err
}

// readMultipart concatenates the text/* parts of a multipart body
func readMultipart(body io.Reader, boundary string) (string, error) {
	if boundary == "" {
		return "", fmt.Errorf("multipart message without boundary")
	}

	var buf bytes.Buffer
	reader := multipart.NewReader(body, boundary)

	for {
		part, err := reader.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}

		disposition := part.Header.Get("Content-Disposition")
		contentType := part.Header.Get("Content-Type")
		if contentType == "" {
			contentType = "text/plain"
		}
		if strings.Contains(disposition, "attachment") || !strings.HasPrefix(contentType, "text/") {
			part.Close()
			continue
		}

		content, err := io.ReadAll(part)
		part.Close()
		if err != nil {
			return "", err
		}

		if buf.Len() > 0 {
			buf.WriteByte('\n')
		}
		buf.Write(content)
	}

	return buf.String(), nil
}
