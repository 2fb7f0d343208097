package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"warrantyportal/internal/resetflow"
)

// resetclient walks the password-reset flow from a terminal: request a
// code, type (or paste) it, set the new password.
func main() {
	baseURL := "http://localhost:8080"
	if len(os.Args) > 1 {
		baseURL = os.Args[1]
	}

	flow := resetflow.NewFlow(baseURL, nil)
	reader := bufio.NewReader(os.Stdin)

	fmt.Println("===== Password Reset =====")
	fmt.Print("Email: ")
	email, _ := reader.ReadString('\n')

	if err := flow.RequestCode(strings.TrimSpace(email)); err != nil {
		fmt.Println("Error:", flow.ErrMsg)
		os.Exit(1)
	}
	fmt.Println(flow.Message)

	// one tick per second while waiting for the code
	stop := make(chan struct{})
	go func() {
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				flow.Tick()
			case <-stop:
				return
			}
		}
	}()
	defer close(stop)

	for flow.Stage() == resetflow.StageOTP {
		fmt.Print("Code (or 'resend'): ")
		line, _ := reader.ReadString('\n')
		line = strings.TrimSpace(line)

		if line == "resend" {
			if !flow.CanResend() {
				fmt.Printf("Resend available in %ds\n", flow.Cooldown())
				continue
			}
			if err := flow.RequestCode(""); err != nil {
				fmt.Println("Error:", flow.ErrMsg)
				continue
			}
			fmt.Println(flow.Message)
			continue
		}

		flow.Entry().Paste(line)
		if !flow.CanSubmitCode() {
			fmt.Println("Enter the 6-digit code")
			continue
		}
		if err := flow.SubmitCode(); err != nil {
			fmt.Println("Error:", flow.ErrMsg)
			continue
		}
		fmt.Println(flow.Message)
	}

	for flow.Stage() == resetflow.StagePassword {
		fmt.Print("New password: ")
		pw, _ := reader.ReadString('\n')
		fmt.Print("Confirm password: ")
		confirm, _ := reader.ReadString('\n')
		pw = strings.TrimRight(pw, "\r\n")
		confirm = strings.TrimRight(confirm, "\r\n")

		if !flow.CanResetPassword(pw, confirm) {
			fmt.Println("Passwords must match and be at least 8 characters")
			continue
		}
		if err := flow.ResetPassword(pw, confirm); err != nil {
			fmt.Println("Error:", flow.ErrMsg)
			continue
		}
		fmt.Println(flow.Message)
	}
}
