package main

import (
	"dental-clinic-api/cmd/bootstrap"

	"github.com/sirupsen/logrus"
)

func main() {
	app, err := bootstrap.New()
	if err != nil {
		logrus.Fatalf("Failed to start clinic API: %v", err)
	}

	app.Run()
}
