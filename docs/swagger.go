// Package docs RailConnect API.
//
// Сервис бронирования железнодорожных билетов. Предоставляет API для поиска
// поездов между станциями, бронирования и отмены билетов, проверки статуса
// по PNR и административного управления каталогом.
//
// Основные возможности:
// - Поиск поездов по паре станций с расчётом цены по сегментам
// - Бронирование с атомарным списанием мест и генерацией PNR
// - Публичная проверка статуса билета по номеру PNR
// - Админ-панель: станции, поезда, маршруты, пользователи, отчёты
//
//	Schemes: http, https
//	BasePath: /
//	Version: 1.0.0
//
//	Consumes:
//	- application/json
//
//	Produces:
//	- application/json
//
//	Security:
//	- session_token:
//
//	SecurityDefinitions:
//	session_token:
//	     type: apiKey
//	     name: X-Session-Token
//	     in: header
//
// swagger:meta
package docs
