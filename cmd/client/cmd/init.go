package cmd

import (
	"smartmoney/cmd/client/cmd/account"
	"smartmoney/cmd/client/cmd/auth"
	"smartmoney/cmd/client/cmd/budget"
	"smartmoney/cmd/client/cmd/insights"
	"smartmoney/cmd/client/cmd/profile"
	"smartmoney/cmd/client/cmd/sync"
	"smartmoney/cmd/client/cmd/tx"
)

func init() {
	rootCmd.AddCommand(auth.AuthCmd)
	auth.AuthCmd.AddCommand(auth.RegisterCmd)
	auth.AuthCmd.AddCommand(auth.LoginCmd)
	auth.AuthCmd.AddCommand(auth.LogoutCmd)
	auth.AuthCmd.AddCommand(auth.RenameCmd)

	rootCmd.AddCommand(tx.TxCmd)
	tx.TxCmd.AddCommand(tx.AddCmd)
	tx.TxCmd.AddCommand(tx.ListCmd)
	tx.TxCmd.AddCommand(tx.DeleteCmd)

	rootCmd.AddCommand(budget.BudgetCmd)
	budget.BudgetCmd.AddCommand(budget.SetCmd)
	budget.BudgetCmd.AddCommand(budget.GetCmd)
	budget.BudgetCmd.AddCommand(budget.ClearCmd)
	budget.BudgetCmd.AddCommand(budget.ListCmd)

	rootCmd.AddCommand(account.AccountCmd)
	account.AccountCmd.AddCommand(account.LinkCmd)
	account.AccountCmd.AddCommand(account.ListCmd)
	account.AccountCmd.AddCommand(account.UnlinkCmd)

	rootCmd.AddCommand(profile.ProfileCmd)
	profile.ProfileCmd.AddCommand(profile.ShowCmd)
	profile.ProfileCmd.AddCommand(profile.SetCmd)

	rootCmd.AddCommand(insights.InsightsCmd)
	rootCmd.AddCommand(sync.SyncCmd)
	rootCmd.AddCommand(sync.SeedCmd)
}
