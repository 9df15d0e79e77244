package entity

// PayloadSource — откуда пришло изображение
type PayloadSource string

const (
	SourceFile   PayloadSource = "file"
	SourceCamera PayloadSource = "camera"
)

// Payload — бинарное изображение для отправки на инференс.
type Payload struct {
	Name     string
	MIMEType string
	Source   PayloadSource
	Data     []byte
}

// Empty сообщает, что данных нет.
func (p *Payload) Empty() bool {
	return p == nil || len(p.Data) == 0
}
