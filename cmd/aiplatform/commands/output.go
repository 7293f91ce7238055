package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/Sereen-Kh/ai-deployment-platform/deployments"
	"github.com/Sereen-Kh/ai-deployment-platform/rag"
	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/pkg/errors"
)

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return errors.Wrap(err, "encoding output")
	}
	return nil
}

func newTable() *uitable.Table {
	table := uitable.New()
	table.MaxColWidth = 60
	table.Wrap = true
	return table
}

// colourStatus renders a deployment status with the dashboard's colour coding.
func colourStatus(s deployments.Status) string {
	switch s {
	case deployments.StatusRunning:
		return color.GreenString(string(s))
	case deployments.StatusFailed:
		return color.RedString(string(s))
	case deployments.StatusStopped, deployments.StatusDeleted:
		return color.HiBlackString(string(s))
	default:
		return color.YellowString(string(s))
	}
}

func colourDocumentStatus(s rag.DocumentStatus) string {
	switch s {
	case rag.DocumentCompleted:
		return color.GreenString(string(s))
	case rag.DocumentFailed:
		return color.RedString(string(s))
	default:
		return color.YellowString(string(s))
	}
}

func formatCost(c float64) string {
	return fmt.Sprintf("$%.2f", c)
}
