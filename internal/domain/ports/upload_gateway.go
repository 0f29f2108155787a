package ports

import "context"

// UploadRequest descreve um arquivo a ser enviado para o storage externo
type UploadRequest struct {
	Content     []byte
	FileName    string
	ContentType string
	Folder      string
}

// UploadResult contém a localização durável do arquivo enviado
type UploadResult struct {
	FileID string // chave no storage, usada para remoção compensatória
	URL    string
}

// UploadGateway define o contrato com o serviço de armazenamento de objetos
type UploadGateway interface {
	Upload(ctx context.Context, req UploadRequest) (*UploadResult, error)
	Delete(ctx context.Context, fileID string) error
}
