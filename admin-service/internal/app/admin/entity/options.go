package entity

// Option - пункт выпадающего списка формы (родительская категория, бренд, ...)
type Option struct {
	Value ID     `json:"value"`
	Label string `json:"label"`
}

// OptionSet - справочник, загруженный один раз при монтировании формы
type OptionSet []Option

// Labeled - запись, которую можно показать в выпадающем списке
type Labeled interface {
	Record
	OptionLabel() string
}

// OptionsFrom строит справочник из записей в порядке сервера
func OptionsFrom[T Labeled](records []T) OptionSet {
	set := make(OptionSet, 0, len(records))
	for _, r := range records {
		set = append(set, Option{Value: r.RecordID(), Label: r.OptionLabel()})
	}
	return set
}

// Label возвращает подпись по id; висячая ссылка показывается как UnknownLabel
func (s OptionSet) Label(id ID) string {
	for _, o := range s {
		if o.Value == id {
			return o.Label
		}
	}
	return UnknownLabel
}

// Contains проверяет, что внешний ключ указывает на существующую запись справочника
func (s OptionSet) Contains(id ID) bool {
	for _, o := range s {
		if o.Value == id {
			return true
		}
	}
	return false
}
