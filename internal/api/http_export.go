package api

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"storerate/internal/entity"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func writeWorkbook(c *gin.Context, f *excelize.File, name string) {
	filename := fmt.Sprintf("%s-%s.xlsx", name, time.Now().UTC().Format("20060102"))
	c.Header("Content-Type", xlsxContentType)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if err := f.Write(c.Writer); err != nil {
		logRequestError(c, err, "write workbook failed")
	}
}

// AdminExportUsers streams the full filtered user list as an XLSX workbook.
// It honours the listing filters but ignores pagination.
func (h *HTTPHandler) AdminExportUsers(c *gin.Context) {
	var params entity.UserQuery
	if err := c.ShouldBindQuery(&params); err != nil {
		InvalidPayload(c, err)
		return
	}

	users, err := h.Repo.ExportUsers(c.Request.Context(), &params)
	if err != nil {
		logRequestError(c, err, "export users failed")
		InternalError(c, err)
		return
	}

	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	if err := f.SetSheetRow(sheet, "A1", &[]interface{}{"ID", "Name", "Email", "Address", "Role", "Created At"}); err != nil {
		logRequestError(c, err, "write workbook row failed")
		InternalError(c, err)
		return
	}
	for i := range users {
		u := &users[i]
		cell := fmt.Sprintf("A%d", i+2)
		err := f.SetSheetRow(sheet, cell, &[]interface{}{
			u.ID, u.Name, u.Email, u.Address, u.Role, u.CreatedAt.UTC().Format(time.RFC3339),
		})
		if err != nil {
			logRequestError(c, err, "write workbook row failed")
			InternalError(c, err)
			return
		}
	}
	writeWorkbook(c, f, "users")
}

// AdminExportRatings streams every rating as an XLSX workbook.
func (h *HTTPHandler) AdminExportRatings(c *gin.Context) {
	ratings, err := h.Repo.ListAllRatings(c.Request.Context())
	if err != nil {
		logRequestError(c, err, "export ratings failed")
		InternalError(c, err)
		return
	}

	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	if err := f.SetSheetRow(sheet, "A1", &[]interface{}{"ID", "Store", "User", "User Email", "Rating", "Comment", "Created At"}); err != nil {
		logRequestError(c, err, "write workbook row failed")
		InternalError(c, err)
		return
	}
	for i := range ratings {
		r := &ratings[i]
		storeName, userName, userEmail := "", "", ""
		if r.Store != nil {
			storeName = r.Store.Name
		}
		if r.User != nil {
			userName = r.User.Name
			userEmail = r.User.Email
		}
		comment := ""
		if r.Comment != nil {
			comment = *r.Comment
		}
		cell := fmt.Sprintf("A%d", i+2)
		err := f.SetSheetRow(sheet, cell, &[]interface{}{
			r.ID, storeName, userName, userEmail, r.Rating, comment, r.CreatedAt.UTC().Format(time.RFC3339),
		})
		if err != nil {
			logRequestError(c, err, "write workbook row failed")
			InternalError(c, err)
			return
		}
	}
	writeWorkbook(c, f, "ratings")
}
