package gateway

import (
	"net/http"

	"github.com/sebuszqo/BillPlatform/internal/auth"
)

// operation is one row of the gateway's rule table.
type operation struct {
	name string
	// role is the claim a caller must hold; empty means public.
	role    string
	write   bool
	success string
	codes   map[Kind]int
}

func (op operation) code(kind Kind) int {
	if c, ok := op.codes[kind]; ok {
		return c
	}
	return defaultCodes[kind]
}

var (
	opRegisterUser = operation{
		name:    "RegisterUser",
		write:   true,
		success: msgSuccess,
	}
	opGetUserIDByEmail = operation{
		name:    "GetUserIDByEmail",
		role:    auth.RoleIndUser,
		success: msgSuccess,
	}
	opAddIndUserBill = operation{
		name:    "AddIndUserBill",
		role:    auth.RoleIndUser,
		write:   true,
		success: msgSuccess,
	}
	opAddBillType = operation{
		name:    "AddBillType",
		role:    auth.RoleIndUser,
		write:   true,
		success: msgSuccess,
	}
	opGetAllBill = operation{
		name:    "GetAllBill",
		role:    auth.RoleIndUser,
		success: msgSuccess,
	}
	opGetAllBillByType = operation{
		name:    "GetAllBillByType",
		role:    auth.RoleIndUser,
		success: msgSuccess,
	}
	opGetAllBillType = operation{
		name:    "GetAllBillType",
		role:    auth.RoleIndUser,
		success: msgSuccess,
	}
	// Existing clients expect a missing user here to be reported as a 500.
	opGetMonthLimit = operation{
		name:    "GetMonthLimit",
		role:    auth.RoleIndUser,
		success: "limit retrieved",
		codes:   map[Kind]int{KindNotFound: http.StatusInternalServerError},
	}
	opUpdateMonthLimit = operation{
		name:    "UpdateMonthLimit",
		role:    auth.RoleIndUser,
		write:   true,
		success: "limit updated",
	}
	opGetPromaryID = operation{
		name:    "GetPromaryID",
		role:    auth.RoleIndUser,
		success: "province ID retrieved",
	}
	opGetCityID = operation{
		name:    "GetCityID",
		role:    auth.RoleIndUser,
		success: "city ID retrieved",
	}
	opGetCityNameByProID = operation{
		name:    "GetCityNameByProID",
		role:    auth.RoleAdmin,
		success: msgSuccess,
	}
	opGetProIDandName = operation{
		name:    "GetProIDandName",
		role:    auth.RoleAdmin,
		success: msgSuccess,
	}
)
