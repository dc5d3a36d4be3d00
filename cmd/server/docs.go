// Schoolscout - School Search and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/schoolscout

// @title Schoolscout API
// @version 1.0
// @description School search and personalised recommendations.
//
// @contact.name GitHub Repository
// @contact.url https://github.com/tomtom215/schoolscout/issues
//
// @license.name AGPL-3.0-or-later
// @license.url https://www.gnu.org/licenses/agpl-3.0.html
//
// @BasePath /api/v1
// @schemes http https
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description HS256 JWT. Send as: Bearer <token>.
//
// @tag.name Core
// @tag.description Health probes
//
// @tag.name Schools
// @tag.description Catalog search and details
//
// @tag.name Recommend
// @tag.description Ranked recommendations
//
// @tag.name Preferences
// @tag.description Stored preferences of signed-in users
package main
