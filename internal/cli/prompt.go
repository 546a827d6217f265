package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
)

func askLine(label string) (string, error) {
	fmt.Printf("%s: ", label)
	r := bufio.NewReader(os.Stdin)
	text, err := r.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

func askYesNo(label string) (bool, error) {
	for {
		v, err := askLine(label + " (y/n)")
		if err != nil {
			return false, err
		}
		switch strings.ToLower(v) {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		default:
			fmt.Println("Enter y or n.")
		}
	}
}

func promptPassword(prompt string) (string, error) {
	fmt.Printf("%s: ", prompt)
	if term.IsTerminal(int(os.Stdin.Fd())) {
		b, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Println()
		return string(b), err
	}
	reader := bufio.NewReader(os.Stdin)
	text, err := reader.ReadString('\n')
	return strings.TrimSpace(text), err
}

func promptPasswordTwice(label string) (string, error) {
	first, err := promptPassword(label)
	if err != nil {
		return "", err
	}
	second, err := promptPassword(label + " (confirm)")
	if err != nil {
		return "", err
	}
	if first != second {
		return "", errors.New("passwords do not match")
	}
	if strings.TrimSpace(first) == "" {
		return "", errors.New("password cannot be empty")
	}
	return first, nil
}
