package main

import (
	"context"
	"fmt"
	"os"

	"github.com/MKhiriev/go-replisync/internal/app"
	"github.com/MKhiriev/go-replisync/internal/cli"
	"github.com/MKhiriev/go-replisync/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	build := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)

	cmd := cli.NewRootCommand(app.Version(build.BuildVersion()))
	cmd.SetVersionTemplate(fmt.Sprintf("syncctl {{.Version}} (%s)\n", build))

	if err := cmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
