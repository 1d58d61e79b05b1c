package profile

import (
	"fmt"

	"github.com/spf13/cobra"

	"smartmoney/cmd/client/cmd/types"
)

var (
	fullName string
	bio      string
	avatar   string
)

// ProfileCmd - родительская команда для профиля пользователя
var ProfileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Профиль пользователя",
}

var ShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Показать профиль",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}
		scope, err := app.Scope()
		if err != nil {
			return err
		}

		p, err := app.Ledger().GetProfile(cmd.Context(), scope)
		if err != nil {
			return err
		}

		fmt.Printf("Имя пользователя: %s\n", p.Username)
		fmt.Printf("Email:            %s\n", scope.Owner)
		if p.FullName != "" {
			fmt.Printf("Полное имя:       %s\n", p.FullName)
		}
		if p.Bio != "" {
			fmt.Printf("О себе:           %s\n", p.Bio)
		}
		if p.Avatar != "" {
			fmt.Printf("Аватар:           %s\n", p.Avatar)
		}
		return nil
	},
}

var SetCmd = &cobra.Command{
	Use:   "set",
	Short: "Изменить профиль",
	Long:  `Меняет только переданные флагами поля.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}
		scope, err := app.Scope()
		if err != nil {
			return err
		}

		p, err := app.Ledger().GetProfile(cmd.Context(), scope)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("name") {
			p.FullName = fullName
		}
		if cmd.Flags().Changed("bio") {
			p.Bio = bio
		}
		if cmd.Flags().Changed("avatar") {
			p.Avatar = avatar
		}

		if err := app.Ledger().SaveProfile(cmd.Context(), scope, p); err != nil {
			return fmt.Errorf("ошибка сохранения профиля: %w", err)
		}
		fmt.Println("✅ Профиль сохранен")
		return nil
	},
}

func init() {
	SetCmd.Flags().StringVar(&fullName, "name", "", "полное имя")
	SetCmd.Flags().StringVar(&bio, "bio", "", "о себе")
	SetCmd.Flags().StringVar(&avatar, "avatar", "", "ссылка на аватар")
}
