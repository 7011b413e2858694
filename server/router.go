package server

import (
	"fmt"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func (s *Server) setupRouter() *gin.Engine {
	ginMode := os.Getenv("GIN_MODE")
	if ginMode == "test" {
		r := gin.New()
		s.defineRoutes(r)
		return r
	}

	r := gin.New()
	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		return fmt.Sprintf("%s - [%s] \"%s %s %s %d %s \"%s\" %s\"\n",
			param.ClientIP,
			param.TimeStamp.Format(time.RFC1123),
			param.Method,
			param.Path,
			param.Request.Proto,
			param.StatusCode,
			param.Latency,
			param.Request.UserAgent(),
			param.ErrorMessage,
		)
	}))
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowAllOrigins:  true,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.MaxMultipartMemory = 8 << 20
	s.defineRoutes(r)

	return r
}

func (s *Server) defineRoutes(router *gin.Engine) {
	payLimiter := limitDonationRate(newDonationRateStore())

	apirouter := router.Group("/api/v1")

	authorized := apirouter.Group("/")
	authorized.Use(s.Authorize())

	authorized.POST("/donation/pay/:post_id", payLimiter, s.handleDonationPay())
	authorized.GET("/donation/donation_history", s.handleDonationHistory())
	authorized.GET("/donation/donation_bill/:donation_id", s.handleDonationBill())
	authorized.POST("/donation/toggle_saved", s.handleToggleSaved())
	authorized.GET("/donation/donation_types", s.handleGetDonationTypes())

	authorized.GET("/points-rewards/badge-list", s.handleGetBadgeList())
	authorized.GET("/points-rewards/reward-history", s.handleGetRewardHistory())
	authorized.GET("/points-rewards/points-actions", s.handleGetPointsActions())
}
