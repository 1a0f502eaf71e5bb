package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/spf13/cobra"
)

// BaseURLFunc supplies the server's HTTP base URL, typically from env.
type BaseURLFunc func() string

// NewIDCommand builds the `id` command group: next and decode.
func NewIDCommand(baseURL BaseURLFunc) *cobra.Command {
	idCmd := &cobra.Command{Use: "id", Short: "ID operations"}
	idCmd.AddCommand(newNextCommand(baseURL))
	idCmd.AddCommand(newDecodeCommand(baseURL))
	return idCmd
}

func newNextCommand(baseURL BaseURLFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "next",
		Short: "Generate one or more IDs",
		RunE: func(cmd *cobra.Command, args []string) error {
			count, _ := cmd.Flags().GetInt("count")
			if count <= 1 {
				body, err := postJSON(baseURL()+"/v1/id/next", nil)
				if err != nil {
					return err
				}
				var resp struct {
					ID string `json:"id"`
				}
				if err := json.Unmarshal(body, &resp); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), resp.ID)
				return nil
			}

			body, err := postJSON(baseURL()+"/v1/id/batch", map[string]int{"count": count})
			if err != nil {
				return err
			}
			var resp struct {
				IDs []string `json:"ids"`
			}
			if err := json.Unmarshal(body, &resp); err != nil {
				return err
			}
			for _, id := range resp.IDs {
				fmt.Fprintln(cmd.OutOrStdout(), id)
			}
			return nil
		},
	}
	cmd.Flags().Int("count", 1, "Number of IDs to generate")
	return cmd
}

func newDecodeCommand(baseURL BaseURLFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "decode <id>",
		Short: "Decompose an ID into its parts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			u := baseURL() + "/v1/id/decode?id=" + url.QueryEscape(args[0])
			resp, err := http.Get(u)
			if err != nil {
				return err
			}
			defer resp.Body.Close()
			body, err := io.ReadAll(resp.Body)
			if err != nil {
				return err
			}
			if resp.StatusCode != http.StatusOK {
				return fmt.Errorf("server returned %s: %s", resp.Status, bytes.TrimSpace(body))
			}
			var pretty bytes.Buffer
			if err := json.Indent(&pretty, body, "", "  "); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), pretty.String())
			return nil
		},
	}
}

func postJSON(u string, payload interface{}) ([]byte, error) {
	var reader io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(b)
	}
	resp, err := http.Post(u, "application/json", reader)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("server returned %s: %s", resp.Status, bytes.TrimSpace(body))
	}
	return body, nil
}
