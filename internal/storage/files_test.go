package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestObjectURL(t *testing.T) {
	store := &MinioStore{bucket: "attachments", endpoint: "files.example.com:9000"}

	assert.Equal(t,
		"http://files.example.com:9000/attachments/report.pdf",
		store.ObjectURL("report.pdf"))

	// Filenames with spaces must survive as a fetchable URL
	assert.Equal(t,
		"http://files.example.com:9000/attachments/annual%20report.pdf",
		store.ObjectURL("annual report.pdf"))
}

func TestObjectURLUsesHTTPSWhenConfigured(t *testing.T) {
	store := &MinioStore{bucket: "attachments", endpoint: "files.example.com", useSSL: true}

	assert.Equal(t,
		"https://files.example.com/attachments/report.pdf",
		store.ObjectURL("report.pdf"))
}
