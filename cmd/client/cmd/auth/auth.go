package auth

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// AuthCmd - родительская команда для всех операций с авторизацей пользователя
var AuthCmd = &cobra.Command{
	Use:   "auth",
	Short: "Управление пользователем",
	Long:  `Регистрация, вход, выход и профиль.`,
}

var stdin = bufio.NewReader(os.Stdin)

func readLine(prompt string) (string, error) {
	fmt.Print(prompt)
	line, err := stdin.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// readPassword не выводит ввод, если stdin - терминал
func readPassword(prompt string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return readLine(prompt)
	}

	fmt.Print(prompt)
	password, err := term.ReadPassword(fd)
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("ошибка чтения пароля: %w", err)
	}
	return string(password), nil
}

func readCredentials(email string, confirm bool) (string, string, error) {
	var err error
	if email == "" {
		if email, err = readLine("Email: "); err != nil {
			return "", "", fmt.Errorf("ошибка чтения email: %w", err)
		}
	}

	password, err := readPassword("Пароль: ")
	if err != nil {
		return "", "", err
	}

	if confirm {
		again, err := readPassword("Повторите пароль: ")
		if err != nil {
			return "", "", err
		}
		if again != password {
			return "", "", fmt.Errorf("пароли не совпадают")
		}
	}

	return email, password, nil
}
