package entities

import "testing"

func TestClassifyFileType(t *testing.T) {
	tests := []struct {
		contentType string
		expected    FileType
	}{
		{"image/png", FileTypePhoto},
		{"image/jpeg", FileTypePhoto},
		{"video/mp4", FileTypeVideo},
		{"video/quicktime", FileTypeVideo},
		{"application/pdf", FileTypeFile},
		{"text/plain", FileTypeFile},
		{"", FileTypeFile},
		{"Image/png", FileTypeFile},
		{"imagex/png", FileTypeFile},
	}

	for _, tt := range tests {
		t.Run(tt.contentType, func(t *testing.T) {
			result := ClassifyFileType(tt.contentType)
			if result != tt.expected {
				t.Errorf("para '%s', esperava %s, obteve %s", tt.contentType, tt.expected, result)
			}
			if !result.IsValid() {
				t.Errorf("tipo %s fora do conjunto conhecido", result)
			}
		})
	}
}

func TestPost_IsOwnedBy(t *testing.T) {
	owner := "8f14e45f-ceea-467f-a0e6-1d7d6b5d2a11"

	t.Run("dono do post", func(t *testing.T) {
		post := &Post{UserID: &owner}
		if !post.IsOwnedBy(owner) {
			t.Error("esperava que o post pertencesse ao usuário")
		}
	})

	t.Run("outro usuário", func(t *testing.T) {
		post := &Post{UserID: &owner}
		if post.IsOwnedBy("c9f0f895-fb98-4b91-9f6c-5c2b1b9f1c22") {
			t.Error("não esperava que o post pertencesse a outro usuário")
		}
	})

	t.Run("post sem dono", func(t *testing.T) {
		post := &Post{}
		if post.IsOwnedBy(owner) {
			t.Error("post sem dono não pertence a ninguém")
		}
	})
}

func TestPost_Validate(t *testing.T) {
	valid := Post{URL: "https://cdn/a.png", FileName: "a.png", FileType: FileTypePhoto}
	if err := valid.Validate(); err != nil {
		t.Fatalf("esperava post válido, obteve %v", err)
	}

	missingURL := valid
	missingURL.URL = ""
	if err := missingURL.Validate(); err == nil {
		t.Error("esperava erro para url vazia")
	}

	badType := valid
	badType.FileType = "audio"
	if err := badType.Validate(); err == nil {
		t.Error("esperava erro para tipo inválido")
	}
}
