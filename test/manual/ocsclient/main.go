//nolint:forbidigo
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/magodo/slog2hclog"
	"github.com/openkcm/common-sdk/pkg/commoncfg"

	"github.com/Mase3206/nextcloud-scim-connector/pkg/clients/ocs"
	"github.com/Mase3206/nextcloud-scim-connector/pkg/config"
)

const usage = `Script to test OCS provisioning API calls against a live Nextcloud instance.
Usage: ocsclient [options]
Options:
	--action	Action to perform (GetUser, ListUsers, GetGroup, ListGroups) (Required)
	--host		The Nextcloud host, without scheme (Required)
	--https		Use HTTPS to reach the host
	--username	Provisioning username (Required)
	--secret	Provisioning secret (Required)
	--id		ID of the user or group to retrieve
`

func getLogger() hclog.Logger {
	logLevel := new(slog.LevelVar)
	logLevel.Set(slog.LevelDebug)

	return slog2hclog.New(slog.Default(), logLevel)
}

func main() {
	var (
		action, host, username, secret, id string
		https                              bool
	)

	flag.StringVar(&action, "action", "", "Action to perform (GetUser, ListUsers, GetGroup, ListGroups)")
	flag.StringVar(&host, "host", "", "Nextcloud host, without scheme")
	flag.BoolVar(&https, "https", true, "Use HTTPS to reach the host")
	flag.StringVar(&username, "username", "", "Provisioning username")
	flag.StringVar(&secret, "secret", "", "Provisioning secret")
	flag.StringVar(&id, "id", "", "ID of the user or group to retrieve")
	flag.Parse()

	if action == "" || host == "" || username == "" || secret == "" {
		fmt.Print(usage)
		os.Exit(1)
	}

	cfg := &config.Config{
		Nextcloud: config.Nextcloud{
			BaseURL: host,
			HTTPS:   https,
			Username: commoncfg.SourceRef{
				Source: commoncfg.EmbeddedSourceValue,
				Value:  username,
			},
			Secret: commoncfg.SourceRef{
				Source: commoncfg.EmbeddedSourceValue,
				Value:  secret,
			},
		},
	}

	client, err := ocs.NewClient(cfg, getLogger())
	if err != nil {
		fmt.Println("Error creating OCS client:", err.Error())
		os.Exit(1)
	}

	ctx := context.Background()

	switch action {
	case "GetUser":
		getUser(ctx, client, id)
	case "ListUsers":
		listUsers(ctx, client)
	case "GetGroup":
		getGroup(ctx, client, id)
	case "ListGroups":
		listGroups(ctx, client)
	default:
		fmt.Println("Invalid action. Supported actions are: GetUser, ListUsers, GetGroup, ListGroups")
		os.Exit(1)
	}
}

func getUser(ctx context.Context, client *ocs.Client, id string) {
	if id == "" {
		fmt.Println("ID is required for GetUser action")
		os.Exit(1)
	}

	user, status, err := client.GetUser(ctx, id)
	if err != nil {
		fmt.Println("Error getting user:", err.Error())
		os.Exit(1)
	}

	if !status.OK() {
		fmt.Printf("Backend refused: %s (code %d)\n", status.Message, status.Code)
		os.Exit(1)
	}

	fmt.Printf("Found User: %s (%s, enabled=%t, groups=%v)\n", user.ID, user.DisplayName, user.Enabled, user.Groups)
}

func listUsers(ctx context.Context, client *ocs.Client) {
	ids, status, err := client.ListUsers(ctx)
	if err != nil {
		fmt.Println("Error listing users:", err.Error())
		os.Exit(1)
	}

	if !status.OK() {
		fmt.Printf("Backend refused: %s (code %d)\n", status.Message, status.Code)
		os.Exit(1)
	}

	fmt.Println("Found Users:")

	for _, id := range ids {
		fmt.Println(id)
	}
}

func getGroup(ctx context.Context, client *ocs.Client, id string) {
	if id == "" {
		fmt.Println("ID is required for GetGroup action")
		os.Exit(1)
	}

	members, status, err := client.GroupMembers(ctx, id)
	if err != nil {
		fmt.Println("Error getting group:", err.Error())
		os.Exit(1)
	}

	if !status.OK() {
		fmt.Printf("Backend refused: %s (code %d)\n", status.Message, status.Code)
		os.Exit(1)
	}

	fmt.Printf("Found Group: %s (members=%v)\n", id, members)
}

func listGroups(ctx context.Context, client *ocs.Client) {
	groups, status, err := client.ListGroupsWithMembers(ctx)
	if err != nil {
		fmt.Println("Error listing groups:", err.Error())
		os.Exit(1)
	}

	if !status.OK() {
		fmt.Printf("Backend refused: %s (code %d)\n", status.Message, status.Code)
		os.Exit(1)
	}

	fmt.Println("Found Groups:")

	for _, group := range groups {
		fmt.Printf("%s: %v\n", group.ID, group.Members)
	}
}
