package repository

import "github.com/maxviazov/clinic-admin-service/internal/config"

func configFor(host string, port int, user, password, db, ssl string) config.PostgresConfig {
	return config.PostgresConfig{Host: host, Port: port, User: user, Password: password, DBName: db, SSLMode: ssl}
}
