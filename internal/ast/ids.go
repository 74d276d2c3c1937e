package ast

type (
	// главные сущности
	FileID uint32
	ItemID uint32
	TypeID uint32
	// подсущности
	PayloadID      uint32
	UseTreeID      uint32
	FieldID        uint32
	VariantID      uint32
	FnParamID      uint32
	GenericParamID uint32
)

const (
	NoFileID         FileID         = 0
	NoItemID         ItemID         = 0
	NoTypeID         TypeID         = 0
	NoPayloadID      PayloadID      = 0
	NoUseTreeID      UseTreeID      = 0
	NoFieldID        FieldID        = 0
	NoVariantID      VariantID      = 0
	NoFnParamID      FnParamID      = 0
	NoGenericParamID GenericParamID = 0
)

func (id FileID) IsValid() bool         { return id != NoFileID }
func (id ItemID) IsValid() bool         { return id != NoItemID }
func (id TypeID) IsValid() bool         { return id != NoTypeID }
func (id PayloadID) IsValid() bool      { return id != NoPayloadID }
func (id UseTreeID) IsValid() bool      { return id != NoUseTreeID }
func (id FieldID) IsValid() bool        { return id != NoFieldID }
func (id VariantID) IsValid() bool      { return id != NoVariantID }
func (id FnParamID) IsValid() bool      { return id != NoFnParamID }
func (id GenericParamID) IsValid() bool { return id != NoGenericParamID }
