package mail

type ExportEmailData struct {
	Source   string
	RowCount int
}

type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}
