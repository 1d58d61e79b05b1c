package finance

// ToStored переводит счет интерфейса в хранимую форму. Неизвестная иконка
// заменяется на DefaultIconID, второй результат тогда false.
func ToStored(account Account) (StoredAccount, bool) {
	kind, known := IconKindOf(account.Icon)
	return StoredAccount{
		ID:   account.ID,
		Name: account.Name,
		Type: account.Type,
		Icon: kind.ID(),
	}, known
}

// FromStored переводит хранимый счет в форму интерфейса. Неизвестный
// идентификатор заменяется на DefaultIcon, второй результат тогда false.
//
// Симметрия не гарантируется: FromStored(ToStored(a)) для неизвестной иконки
// вернет DefaultIcon, а не исходную иконку.
func FromStored(stored StoredAccount) (Account, bool) {
	kind, known := ParseIconID(stored.Icon)
	return Account{
		ID:   stored.ID,
		Name: stored.Name,
		Type: stored.Type,
		Icon: kind.Icon(),
	}, known
}
