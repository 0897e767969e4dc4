package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/procfault/zombiemaker/procinfo"
)

// StatusCommand shows all zombiemaker processes found in the process table
type StatusCommand struct {
}

var statusCommand StatusCommand

// Execute scans the process table and renders one row per zombiemaker
// process, zombies included
func (sc StatusCommand) Execute(args []string) error {
	name := "zombiemaker"
	if exe, err := os.Executable(); err == nil {
		name = filepath.Base(exe)
	}

	procs, err := procinfo.ByName(name)
	if err != nil {
		return err
	}
	if len(procs) == 0 {
		fmt.Println("no zombiemaker process is running")
		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"PID", "PPID", "State", "Uptime", "Zombie"})
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetBorder(false)
	for _, p := range procs {
		zombie := ""
		if p.Zombie {
			zombie = "yes"
		}
		table.Append([]string{
			strconv.Itoa(int(p.PID)),
			strconv.Itoa(int(p.PPID)),
			p.State,
			procinfo.Uptime(p.StartedAt),
			zombie,
		})
	}
	table.Render()
	return nil
}

func init() {
	parser.AddCommand("status",
		"show the zombiemaker processes",
		"show all running zombiemaker processes and their states",
		&statusCommand)
}
