package env

import "fmt"

type DBEnvironment struct {
	UserName     string `validate:"required,min=4"`
	UserPassword string `validate:"required,min=4"`
	DatabaseName string `validate:"required,min=4"`
	Port         int    `validate:"required,min=1,max=65535"`
	Host         string `validate:"required"`
	DriverName   string `validate:"required,oneof=postgres"`
	SSLMode      string `validate:"required,oneof=disable allow prefer require"`
	TimeZone     string `validate:"required"`
}

func (e DBEnvironment) GetDSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%d sslmode=%s TimeZone=%s",
		e.Host,
		e.UserName,
		e.UserPassword,
		e.DatabaseName,
		e.Port,
		e.SSLMode,
		e.TimeZone,
	)
}
