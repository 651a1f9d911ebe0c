package main

import (
	"github.com/sirupsen/logrus"
)

func main() {
	if err := RootCommand().Execute(); err != nil {
		logrus.Fatal(err)
	}
}
