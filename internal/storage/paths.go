package storage

const (
	Path       = "/var/resale/data"
	ArchiveDir = Path + "/backups"
)
