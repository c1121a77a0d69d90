package db

// Config carries the connection settings for Open. Type selects the gorm
// dialect (postgres, mysql, sqlite); ConnMaxLifetime and ConnMaxIdleTime are
// in seconds, zero leaves the pool default.
type Config struct {
	Type            string
	Host            string
	Port            string
	Name            string
	User            string
	Password        string
	SSLMode         string
	MaxIdleConn     int
	MaxOpenConn     int
	ConnMaxLifetime int
	ConnMaxIdleTime int
}
